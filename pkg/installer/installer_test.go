package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentkit/agentkit/pkg/resolver"
	"github.com/agentkit/agentkit/pkg/stores"
)

func fixtureRegistry(t *testing.T, sourceRoot string) *resolver.Registry {
	t.Helper()

	hookPath := filepath.Join(sourceRoot, "typecheck.sh")
	cmdPath := filepath.Join(sourceRoot, "commit.md")
	if err := os.WriteFile(hookPath, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := os.WriteFile(cmdPath, []byte("Run checks.\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	reg, err := resolver.BuildRegistry([]resolver.Component{
		{ID: "typecheck", Category: resolver.CategoryHook, SourcePath: hookPath, Body: []byte("#!/bin/sh\n")},
		{ID: "commit", Category: resolver.CategoryCommand, SourcePath: cmdPath, Body: []byte("Run checks.\n"), DeclaredDependencies: []string{"typecheck"}},
	})
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}
	return reg
}

func TestInstall_Copy(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	reg := fixtureRegistry(t, source)

	inst, err := New(Options{TargetDir: target}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := inst.Install(context.Background(), reg, []string{"typecheck", "commit"})
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if len(result.Installed) != 2 {
		t.Errorf("Expected 2 installed, got %v", result.Installed)
	}

	hookDest := filepath.Join(target, "hooks", "typecheck.sh")
	info, err := os.Stat(hookDest)
	if err != nil {
		t.Fatalf("Expected hook at %s: %v", hookDest, err)
	}
	if info.Mode().Perm()&0111 == 0 {
		t.Error("Expected installed hook to be executable")
	}

	if _, err := os.Stat(filepath.Join(target, "commands", "commit.md")); err != nil {
		t.Errorf("Expected command installed: %v", err)
	}
}

func TestInstall_Symlink(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	reg := fixtureRegistry(t, source)

	inst, err := New(Options{TargetDir: target, Mode: ModeSymlink}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := inst.Install(context.Background(), reg, []string{"typecheck"}); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	dest := filepath.Join(target, "hooks", "typecheck.sh")
	info, err := os.Lstat(dest)
	if err != nil {
		t.Fatalf("Expected symlink at %s: %v", dest, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("Expected a symlink")
	}
}

func TestInstall_DryRun(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	reg := fixtureRegistry(t, source)

	inst, err := New(Options{TargetDir: target, DryRun: true}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := inst.Install(context.Background(), reg, []string{"typecheck", "commit"})
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if len(result.Installed) != 2 {
		t.Errorf("Expected dry run to report 2 components, got %v", result.Installed)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected dry run to leave target untouched, found %d entries", len(entries))
	}
}

func TestInstall_RecordsHistory(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	reg := fixtureRegistry(t, source)

	store, err := stores.NewSQLiteStore(stores.Config{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("store init failed: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("store migrate failed: %v", err)
	}
	defer store.Close()

	inst, err := New(Options{TargetDir: target}, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := inst.Install(ctx, reg, []string{"typecheck", "commit"})
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	record, err := store.GetInstall(ctx, result.InstallID)
	if err != nil {
		t.Fatalf("GetInstall failed: %v", err)
	}
	if record.Status != stores.InstallStatusCompleted {
		t.Errorf("Expected completed status, got %s", record.Status)
	}

	components, err := store.ListInstalledComponents(ctx, result.InstallID)
	if err != nil {
		t.Fatalf("ListInstalledComponents failed: %v", err)
	}
	if len(components) != 2 || components[0].ComponentID != "typecheck" {
		t.Errorf("Unexpected component records: %+v", components)
	}
}

func TestNew_InvalidMode(t *testing.T) {
	if _, err := New(Options{TargetDir: "/tmp/x", Mode: "hardlink"}, nil, zerolog.Nop()); err == nil {
		t.Error("Expected error for unsupported mode")
	}
}
