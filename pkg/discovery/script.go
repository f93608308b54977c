package discovery

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/agentkit/agentkit/pkg/resolver"
)

// scriptHeaderLines bounds how far into a script the header scan looks.
const scriptHeaderLines = 30

// parseScript parses a hook script. Dependency information is declared in
// a structured header comment near the top of the file:
//
//	#!/usr/bin/env bash
//	# Description: Run the linter before commits
//	# Dependencies: validation-lib, git, jq
//
// Tokens are recorded verbatim; whether a token is another component or a
// third-party tool is decided later by registry membership. Scripts never
// fail to parse: a script without a header is a component without
// dependencies.
func parseScript(path string, data []byte) *resolver.Component {
	component := &resolver.Component{
		ID:         componentID(path),
		Category:   resolver.CategoryHook,
		SourcePath: path,
		Body:       data,
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for line := 0; scanner.Scan() && line < scriptHeaderLines; line++ {
		text := strings.TrimSpace(scanner.Text())
		value, ok := headerField(text, "Dependencies")
		if ok {
			component.DeclaredDependencies = splitTokens(value)
			continue
		}
		if value, ok := headerField(text, "Description"); ok && component.Description == "" {
			component.Description = value
		}
	}

	return component
}

// headerField extracts "<name>: <value>" from a comment line, tolerating
// the comment markers of the common hook script languages.
func headerField(line, name string) (string, bool) {
	for _, marker := range []string{"#", "//", "--"} {
		if !strings.HasPrefix(line, marker) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, marker))
		if strings.HasPrefix(rest, name+":") {
			return strings.TrimSpace(strings.TrimPrefix(rest, name+":")), true
		}
	}
	return "", false
}

// splitTokens splits a comma-separated token list, dropping empties.
func splitTokens(value string) []string {
	var tokens []string
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
