package discovery

import (
	"bytes"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/agentkit/agentkit/pkg/resolver"
)

// markdownMeta is the typed YAML frontmatter of a markdown component.
type markdownMeta struct {
	// Name overrides the file-derived component id.
	Name string `yaml:"name"`

	// Description is a human-readable summary.
	Description string `yaml:"description"`

	// Dependencies lists explicit prerequisite identifiers.
	Dependencies []string `yaml:"dependencies"`
}

var frontmatterDelim = []byte("---")

// referencePattern matches inline cross-references in a markdown body:
// slash-command mentions like "/commit" and agent mentions like
// "@reviewer". Matches are raw candidates only; the resolver confirms
// them against the registry before they become graph edges.
var referencePattern = regexp.MustCompile(`(?m)(?:^|[\s(` + "`" + `])[/@]([a-z0-9][a-z0-9._-]*)`)

// parseMarkdown parses a markdown component: strict frontmatter extraction
// first, then a best-effort body scan for referenced ids.
func parseMarkdown(path string, category resolver.Category, data []byte) (*resolver.Component, error) {
	meta, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter of %s: %w", path, err)
	}

	id := meta.Name
	if id == "" {
		id = componentID(path)
	}

	return &resolver.Component{
		ID:                     id,
		Category:               category,
		Description:            meta.Description,
		DeclaredDependencies:   meta.Dependencies,
		ReferencedDependencies: scanReferences(body, id),
		SourcePath:             path,
		Body:                   data,
	}, nil
}

// splitFrontmatter separates an optional leading "---" delimited YAML block
// from the markdown body. A document without frontmatter is all body.
func splitFrontmatter(data []byte) (markdownMeta, []byte, error) {
	var meta markdownMeta

	trimmed := bytes.TrimLeft(data, "\r\n")
	if !bytes.HasPrefix(trimmed, frontmatterDelim) {
		return meta, data, nil
	}

	rest := trimmed[len(frontmatterDelim):]
	end := bytes.Index(rest, append([]byte("\n"), frontmatterDelim...))
	if end < 0 {
		return meta, nil, fmt.Errorf("unterminated frontmatter block")
	}

	block := rest[:end]
	body := rest[end+1+len(frontmatterDelim):]

	if err := yaml.Unmarshal(block, &meta); err != nil {
		return meta, nil, err
	}

	return meta, body, nil
}

// scanReferences extracts candidate component ids from a markdown body in
// first-occurrence order, dropping self-references and duplicates.
func scanReferences(body []byte, selfID string) []string {
	matches := referencePattern.FindAllSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := map[string]bool{selfID: true}
	var refs []string
	for _, m := range matches {
		id := string(m[1])
		if seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, id)
	}
	return refs
}
