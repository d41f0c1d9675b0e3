package hierarchy

import (
	"github.com/FocuswithJustin/xml2csv/core/table"
	"github.com/FocuswithJustin/xml2csv/core/text"
	"github.com/FocuswithJustin/xml2csv/core/xml"
)

// Row is one unit of extracted content paired with its tag path.
// Hierarchy is never empty and Content is never empty.
type Row struct {
	Hierarchy []string
	Content   string
}

// Content renders the content of a single element: Markdown for table
// elements, normalized subtree text for everything else.
func Content(n *xml.Node) string {
	if table.IsTable(n.Name()) {
		return table.ToMarkdown(n)
	}
	return text.Extract(n)
}

// ProcessElement walks the subtree rooted at n recursively. hierarchy is the
// tag path of n's parent and is not modified.
func ProcessElement(n *xml.Node, hierarchy []string) []Row {
	if n == nil {
		return nil
	}

	current := extend(hierarchy, n.Name())

	var rows []Row
	if content := Content(n); content != "" {
		rows = append(rows, Row{Hierarchy: current, Content: content})
	}
	for _, child := range n.Children() {
		rows = append(rows, ProcessElement(child, current)...)
	}
	return rows
}

// Walk produces the same rows as ProcessElement(root, nil) using an explicit
// stack, so document depth is bounded by memory rather than goroutine stack.
func Walk(root *xml.Node) []Row {
	if root == nil {
		return nil
	}

	type frame struct {
		node   *xml.Node
		parent []string
	}

	var rows []Row
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		current := extend(f.parent, f.node.Name())
		if content := Content(f.node); content != "" {
			rows = append(rows, Row{Hierarchy: current, Content: content})
		}

		// Push in reverse so the first child is visited next.
		children := f.node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i], parent: current})
		}
	}
	return rows
}

// extend returns a fresh slice holding path followed by tag, so no two rows
// share a backing array.
func extend(path []string, tag string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = tag
	return out
}
