package stores

import (
	"context"
	"time"
)

// InstallStatus represents the status of an install run.
type InstallStatus string

const (
	InstallStatusPending   InstallStatus = "pending"
	InstallStatusRunning   InstallStatus = "running"
	InstallStatusCompleted InstallStatus = "completed"
	InstallStatusFailed    InstallStatus = "failed"
)

// Install represents one install run: a resolved selection applied to a
// target directory.
type Install struct {
	ID          string        `json:"id"`
	TargetDir   string        `json:"target_dir"`
	Mode        string        `json:"mode"` // copy or symlink
	Status      InstallStatus `json:"status"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Error       *string       `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// InstalledComponent records one component placed by an install run.
// Position is the component's ordinal in the resolved installation order.
type InstalledComponent struct {
	InstallID   string    `json:"install_id"`
	ComponentID string    `json:"component_id"`
	Category    string    `json:"category"`
	Position    int       `json:"position"`
	SourcePath  string    `json:"source_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store defines the interface for the install history persistence layer.
type Store interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error

	// Install operations
	CreateInstall(ctx context.Context, install *Install) error
	GetInstall(ctx context.Context, id string) (*Install, error)
	UpdateInstallStatus(ctx context.Context, id string, status InstallStatus, errMsg *string) error
	ListInstalls(ctx context.Context, limit, offset int) ([]*Install, error)

	// Component operations
	AddInstalledComponents(ctx context.Context, components []InstalledComponent) error
	ListInstalledComponents(ctx context.Context, installID string) ([]*InstalledComponent, error)

	// Utility
	HealthCheck(ctx context.Context) error
}
