// Package templates substitutes `{{ name }}` placeholders and writes rendered output.
//
// There is no template language: a placeholder is a name between double braces,
// optionally padded with whitespace, and is replaced by the matching parameter value.
// Placeholders without a value are left exactly as written.
package templates

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([^}\s]+)\s*\}\}`)

// Render replaces every placeholder in tpl whose name is present in params.
// Neither tpl nor params is modified.
func Render(tpl string, params map[string]any) string {
	matches := placeholderPattern.FindAllStringSubmatchIndex(tpl, -1)
	if len(matches) == 0 {
		return tpl
	}

	var b strings.Builder
	b.Grow(len(tpl))
	last := 0
	for _, m := range matches {
		b.WriteString(tpl[last:m[0]])
		if value, ok := params[tpl[m[2]:m[3]]]; ok {
			b.WriteString(fmt.Sprint(value))
		} else {
			b.WriteString(tpl[m[0]:m[1]])
		}
		last = m[1]
	}
	b.WriteString(tpl[last:])
	return b.String()
}
