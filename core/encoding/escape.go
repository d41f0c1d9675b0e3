// Package encoding provides shared text escaping utilities.
package encoding

import "strings"

// QuoteCSV returns s as an always-quoted CSV field: wrapped in double
// quotes with every embedded quote doubled. Delimiters and line breaks in s
// need no further treatment inside the quotes.
func QuoteCSV(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(s, `"`, `""`))
	b.WriteByte('"')
	return b.String()
}
