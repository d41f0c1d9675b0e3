// Package text extracts and normalizes the inline text of an element subtree.
package text

import (
	"strings"

	"github.com/FocuswithJustin/xml2csv/core/xml"
)

// Extract returns the flattened, normalized text of the subtree rooted at n.
// The text pieces of the subtree are joined with single spaces in document
// order and then passed through Normalize. A subtree without text yields "".
func Extract(n *xml.Node) string {
	return Normalize(strings.Join(n.TextPieces(), " "))
}

// Normalize collapses every run of whitespace to a single space, replaces
// commas with semicolons and trims the result. It is idempotent.
func Normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, ",", ";")
}
