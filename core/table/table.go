// Package table renders table-shaped XML subtrees (CALS/DocBook style
// table > tgroup > thead/tbody > row > entry) as Markdown tables.
package table

import (
	"strings"

	"github.com/FocuswithJustin/xml2csv/core/text"
	"github.com/FocuswithJustin/xml2csv/core/xml"
)

var (
	theadQuery = xml.MustCompile(".//thead")
	tbodyQuery = xml.MustCompile(".//tbody")
	rowQuery   = xml.MustCompile(".//row")
)

// IsTable reports whether tag names a table element (case-insensitive).
func IsTable(tag string) bool {
	return strings.EqualFold(tag, "table")
}

// ToMarkdown converts a table element into Markdown table lines joined by
// newlines.
//
// The header row is the first row under the first thead, or the first row
// anywhere when there is no thead. Body rows are every row under the first
// tbody; without a tbody they are every row in the table except the header
// row. Each direct child of a row is one cell. Column counts are not
// reconciled between rows.
func ToMarkdown(tbl *xml.Node) string {
	var lines []string

	var headerRow *xml.Node
	if thead := tbl.FindFirst(theadQuery); thead != nil {
		headerRow = thead.FindFirst(rowQuery)
	} else {
		headerRow = tbl.FindFirst(rowQuery)
	}

	if headerRow != nil {
		if headers := cells(headerRow); len(headers) > 0 {
			sep := make([]string, len(headers))
			for i := range sep {
				sep[i] = "---"
			}
			lines = append(lines, line(headers), line(sep))
		}
	}

	var bodyRows []*xml.Node
	if tbody := tbl.FindFirst(tbodyQuery); tbody != nil {
		bodyRows = tbody.FindAll(rowQuery)
	} else {
		for _, row := range tbl.FindAll(rowQuery) {
			if headerRow != nil && row.Same(headerRow) {
				continue
			}
			bodyRows = append(bodyRows, row)
		}
	}

	for _, row := range bodyRows {
		lines = append(lines, line(cells(row)))
	}

	return strings.Join(lines, "\n")
}

func cells(row *xml.Node) []string {
	children := row.Children()
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = text.Extract(c)
	}
	return out
}

func line(values []string) string {
	return "| " + strings.Join(values, " | ") + " |"
}
