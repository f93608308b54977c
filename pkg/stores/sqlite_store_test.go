package stores

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// setupTestStore creates a file-backed SQLite store in a temp dir.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(Config{
		Path: filepath.Join(t.TempDir(), "agentkit.db"),
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testInstall(id string) *Install {
	now := time.Now()
	return &Install{
		ID:        id,
		TargetDir: "/tmp/target",
		Mode:      "copy",
		Status:    InstallStatusRunning,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStoreLifecycle(t *testing.T) {
	store := setupTestStore(t)

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("health check failed: %v", err)
	}
}

func TestStoreMigrations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Check that tables exist by querying them
	for _, table := range []string{"installs", "install_components"} {
		var count int
		if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			t.Errorf("table %s does not exist or is not accessible: %v", table, err)
		}
	}
}

func TestInstallCRUD(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	install := testInstall("install-001")
	if err := store.CreateInstall(ctx, install); err != nil {
		t.Fatalf("failed to create install: %v", err)
	}

	got, err := store.GetInstall(ctx, "install-001")
	if err != nil {
		t.Fatalf("failed to get install: %v", err)
	}
	if got.TargetDir != install.TargetDir || got.Mode != "copy" {
		t.Errorf("unexpected install: %+v", got)
	}
	if got.Status != InstallStatusRunning {
		t.Errorf("expected status running, got %s", got.Status)
	}

	if err := store.UpdateInstallStatus(ctx, "install-001", InstallStatusCompleted, nil); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	got, err = store.GetInstall(ctx, "install-001")
	if err != nil {
		t.Fatalf("failed to get install after update: %v", err)
	}
	if got.Status != InstallStatusCompleted {
		t.Errorf("expected status completed, got %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("expected completed_at to be set")
	}
}

func TestUpdateInstallStatus_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.UpdateInstallStatus(context.Background(), "missing", InstallStatusFailed, nil)
	if err == nil {
		t.Error("expected error updating unknown install")
	}
}

func TestListInstalls(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"first", "second", "third"} {
		install := testInstall(id)
		install.StartedAt = time.Now().Add(time.Duration(i) * time.Second)
		if err := store.CreateInstall(ctx, install); err != nil {
			t.Fatalf("failed to create install %s: %v", id, err)
		}
	}

	installs, err := store.ListInstalls(ctx, 2, 0)
	if err != nil {
		t.Fatalf("failed to list installs: %v", err)
	}
	if len(installs) != 2 {
		t.Fatalf("expected 2 installs, got %d", len(installs))
	}
	// Newest first
	if installs[0].ID != "third" {
		t.Errorf("expected third first, got %s", installs[0].ID)
	}
}

func TestInstalledComponents(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.CreateInstall(ctx, testInstall("install-002")); err != nil {
		t.Fatalf("failed to create install: %v", err)
	}

	now := time.Now()
	components := []InstalledComponent{
		{InstallID: "install-002", ComponentID: "validation-lib", Category: "hook", Position: 0, SourcePath: "hooks/validation-lib.sh", CreatedAt: now},
		{InstallID: "install-002", ComponentID: "typecheck", Category: "hook", Position: 1, SourcePath: "hooks/typecheck.sh", CreatedAt: now},
		{InstallID: "install-002", ComponentID: "commit", Category: "command", Position: 2, SourcePath: "commands/commit.md", CreatedAt: now},
	}
	if err := store.AddInstalledComponents(ctx, components); err != nil {
		t.Fatalf("failed to add components: %v", err)
	}

	got, err := store.ListInstalledComponents(ctx, "install-002")
	if err != nil {
		t.Fatalf("failed to list components: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 components, got %d", len(got))
	}
	// Installation order preserved
	for i, want := range []string{"validation-lib", "typecheck", "commit"} {
		if got[i].ComponentID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, got[i].ComponentID)
		}
	}
}
