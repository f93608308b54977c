package stores

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// SQLite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Config holds SQLite store configuration.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	return &SQLiteStore{
		path: cfg.Path,
	}, nil
}

// Init initializes the database connection and enables WAL mode.
func (s *SQLiteStore) Init(ctx context.Context) error {
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", s.path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Ensure foreign keys are enabled (connection-level setting)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate runs database migrations from the embedded migration files.
func (s *SQLiteStore) Migrate(_ context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// CreateInstall creates a new install record.
func (s *SQLiteStore) CreateInstall(ctx context.Context, install *Install) error {
	query := `
		INSERT INTO installs (id, target_dir, mode, status, started_at, completed_at, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		install.ID,
		install.TargetDir,
		install.Mode,
		install.Status,
		install.StartedAt,
		install.CompletedAt,
		install.Error,
		install.CreatedAt,
		install.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create install: %w", err)
	}

	return nil
}

// GetInstall retrieves an install by ID.
func (s *SQLiteStore) GetInstall(ctx context.Context, id string) (*Install, error) {
	query := `
		SELECT id, target_dir, mode, status, started_at, completed_at, error, created_at, updated_at
		FROM installs
		WHERE id = ?
	`

	install := &Install{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&install.ID,
		&install.TargetDir,
		&install.Mode,
		&install.Status,
		&install.StartedAt,
		&install.CompletedAt,
		&install.Error,
		&install.CreatedAt,
		&install.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("install not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get install: %w", err)
	}

	return install, nil
}

// UpdateInstallStatus updates the status of an install run.
func (s *SQLiteStore) UpdateInstallStatus(ctx context.Context, id string, status InstallStatus, errMsg *string) error {
	query := `
		UPDATE installs
		SET status = ?, error = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now()
	var completedAt *time.Time
	if status == InstallStatusCompleted || status == InstallStatusFailed {
		completedAt = &now
	}

	result, err := s.db.ExecContext(ctx, query, status, errMsg, completedAt, now, id)
	if err != nil {
		return fmt.Errorf("failed to update install status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("install not found: %s", id)
	}

	return nil
}

// ListInstalls lists install runs with pagination, newest first.
func (s *SQLiteStore) ListInstalls(ctx context.Context, limit, offset int) ([]*Install, error) {
	query := `
		SELECT id, target_dir, mode, status, started_at, completed_at, error, created_at, updated_at
		FROM installs
		ORDER BY started_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list installs: %w", err)
	}
	defer rows.Close()

	installs := []*Install{}
	for rows.Next() {
		install := &Install{}
		err := rows.Scan(
			&install.ID,
			&install.TargetDir,
			&install.Mode,
			&install.Status,
			&install.StartedAt,
			&install.CompletedAt,
			&install.Error,
			&install.CreatedAt,
			&install.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan install: %w", err)
		}
		installs = append(installs, install)
	}

	return installs, rows.Err()
}

// AddInstalledComponents records the components placed by an install run.
func (s *SQLiteStore) AddInstalledComponents(ctx context.Context, components []InstalledComponent) error {
	if len(components) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO install_components (install_id, component_id, category, position, source_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, c := range components {
		if _, err := tx.ExecContext(ctx, query,
			c.InstallID,
			c.ComponentID,
			c.Category,
			c.Position,
			c.SourcePath,
			c.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to record component %s: %w", c.ComponentID, err)
		}
	}

	return tx.Commit()
}

// ListInstalledComponents lists the components of an install run in
// installation order.
func (s *SQLiteStore) ListInstalledComponents(ctx context.Context, installID string) ([]*InstalledComponent, error) {
	query := `
		SELECT install_id, component_id, category, position, source_path, created_at
		FROM install_components
		WHERE install_id = ?
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, installID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installed components: %w", err)
	}
	defer rows.Close()

	components := []*InstalledComponent{}
	for rows.Next() {
		c := &InstalledComponent{}
		err := rows.Scan(
			&c.InstallID,
			&c.ComponentID,
			&c.Category,
			&c.Position,
			&c.SourcePath,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installed component: %w", err)
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

// HealthCheck verifies the database connection.
func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return s.db.PingContext(ctx)
}
