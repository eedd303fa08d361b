// Package template implements a minimal named-token template renderer used by
// the response catalog. Templates contain placeholders of the form {name};
// rendering substitutes each placeholder with the supplied value, or with the
// empty string when no value is provided.
package template

import (
	"regexp"
	"strings"
)

// Values maps placeholder names to their replacement text.
type Values map[string]string

var placeholderRegex = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9_]*)\}`)

// Render substitutes every {name} placeholder in tmpl with values[name].
// Unknown placeholders render as empty strings rather than failing, so
// template authoring errors degrade gracefully instead of erroring at
// runtime.
func Render(tmpl string, values Values) string {
	out := placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1 : len(match)-1]
		return values[name]
	})
	// Collapse doubled spaces left behind by empty substitutions, keeping
	// newlines intact.
	for strings.Contains(out, "  ") {
		out = strings.ReplaceAll(out, "  ", " ")
	}
	return strings.TrimSpace(out)
}

// Placeholders returns the distinct placeholder names referenced by tmpl in
// order of first appearance.
func Placeholders(tmpl string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRegex.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
