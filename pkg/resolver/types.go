package resolver

// Category classifies an installable component.
type Category string

const (
	// CategoryCommand is a markdown slash-command descriptor.
	CategoryCommand Category = "command"

	// CategoryHook is a script executed by the tool's hook runner.
	CategoryHook Category = "hook"

	// CategorySubagent is a markdown subagent descriptor.
	CategorySubagent Category = "subagent"
)

// Categories lists all known component categories in display order.
func Categories() []Category {
	return []Category{CategoryCommand, CategoryHook, CategorySubagent}
}

// Component represents a single installable unit discovered from a toolkit
// source tree. Its dependency fields carry raw identifier tokens; whether a
// token refers to another component or to an external tool is decided at
// graph-build time by registry membership.
type Component struct {
	// ID is the unique identifier, used as the graph node key.
	ID string `json:"id" validate:"required"`

	// Category is the component kind. Informational only; it does not
	// affect resolution.
	Category Category `json:"category" validate:"required,oneof=command hook subagent"`

	// Description is the human-readable summary from the descriptor.
	Description string `json:"description,omitempty"`

	// DeclaredDependencies are identifiers listed explicitly in the
	// component's metadata, in declaration order.
	DeclaredDependencies []string `json:"declared_dependencies,omitempty"`

	// ReferencedDependencies are identifiers found by scanning the
	// component body for cross-references, in first-occurrence order.
	// They are treated like declared dependencies once confirmed
	// against the registry.
	ReferencedDependencies []string `json:"referenced_dependencies,omitempty"`

	// SourcePath is the file the component was discovered from.
	// Carried for diagnostics and installation only.
	SourcePath string `json:"source_path,omitempty"`

	// Body is the raw component content, carried for installation.
	Body []byte `json:"-"`
}

// effectiveDependencies returns declared then referenced dependency tokens
// with duplicates removed, preserving first-occurrence order.
func (c *Component) effectiveDependencies() []string {
	seen := make(map[string]bool, len(c.DeclaredDependencies)+len(c.ReferencedDependencies))
	deps := make([]string, 0, len(c.DeclaredDependencies)+len(c.ReferencedDependencies))

	for _, lists := range [][]string{c.DeclaredDependencies, c.ReferencedDependencies} {
		for _, dep := range lists {
			if dep == "" || dep == c.ID || seen[dep] {
				continue
			}
			seen[dep] = true
			deps = append(deps, dep)
		}
	}

	return deps
}
