// Package discovery parses a toolkit source tree into resolver components.
//
// Two descriptor formats are supported: markdown components (commands and
// subagents) with a YAML frontmatter block and inline cross-references, and
// script hooks with a structured header comment. Discovery only collects
// and parses; dependency classification, duplicate detection, and all graph
// semantics live in the resolver.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/agentkit/agentkit/pkg/resolver"
)

// Default subdirectories of a toolkit source tree.
const (
	DefaultCommandsDir = "commands"
	DefaultAgentsDir   = "agents"
	DefaultHooksDir    = "hooks"
)

// Config configures a Scanner.
type Config struct {
	// Root is the toolkit source tree root.
	Root string `validate:"required"`

	// CommandsDir, AgentsDir, and HooksDir override the default
	// subdirectory names when non-empty.
	CommandsDir string
	AgentsDir   string
	HooksDir    string
}

// Scanner discovers components from a toolkit source tree.
type Scanner struct {
	config   Config
	validate *validator.Validate
}

// NewScanner creates a scanner for the given source tree.
func NewScanner(cfg Config) (*Scanner, error) {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid discovery config: %w", err)
	}

	if cfg.CommandsDir == "" {
		cfg.CommandsDir = DefaultCommandsDir
	}
	if cfg.AgentsDir == "" {
		cfg.AgentsDir = DefaultAgentsDir
	}
	if cfg.HooksDir == "" {
		cfg.HooksDir = DefaultHooksDir
	}

	return &Scanner{config: cfg, validate: v}, nil
}

// Roots returns the directories the scanner reads, for watch setup.
// Missing directories are omitted.
func (s *Scanner) Roots() []string {
	var roots []string
	for _, dir := range []string{s.config.CommandsDir, s.config.AgentsDir, s.config.HooksDir} {
		path := filepath.Join(s.config.Root, dir)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			roots = append(roots, path)
		}
	}
	return roots
}

// Scan walks the source tree and returns all parsed components, sorted by
// source path for reproducible discovery order. A missing category
// directory is not an error; an unparseable descriptor is.
func (s *Scanner) Scan() ([]resolver.Component, error) {
	var components []resolver.Component

	kinds := []struct {
		dir      string
		category resolver.Category
	}{
		{s.config.CommandsDir, resolver.CategoryCommand},
		{s.config.AgentsDir, resolver.CategorySubagent},
		{s.config.HooksDir, resolver.CategoryHook},
	}

	for _, kind := range kinds {
		dir := filepath.Join(s.config.Root, kind.dir)
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			component, err := s.parseFile(path, kind.category)
			if err != nil {
				return nil, err
			}
			if component == nil {
				continue
			}
			components = append(components, *component)
		}
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].SourcePath < components[j].SourcePath
	})

	return components, nil
}

// parseFile dispatches on category: markdown descriptors for commands and
// subagents, script headers for hooks. Non-markdown files in command or
// agent directories are skipped.
func (s *Scanner) parseFile(path string, category resolver.Category) (*resolver.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read component %s: %w", path, err)
	}

	var component *resolver.Component
	switch category {
	case resolver.CategoryHook:
		component = parseScript(path, data)
	default:
		if filepath.Ext(path) != ".md" {
			return nil, nil
		}
		component, err = parseMarkdown(path, category, data)
		if err != nil {
			return nil, err
		}
	}

	if err := s.validate.Struct(component); err != nil {
		return nil, fmt.Errorf("invalid component %s: %w", path, err)
	}

	return component, nil
}

// componentID derives a component id from its file name.
func componentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
