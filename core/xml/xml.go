// Package xml provides the parsed XML tree consumed by the conversion core.
//
// Security Notes:
//   - XXE (External Entity) attacks are mitigated by a well-formedness pass
//     over Go's xml.Decoder with entity expansion disabled before the tree
//     is built. Documents referencing custom entities are rejected.
//   - The xmlquery library is used for the tree itself; it uses Go's
//     encoding/xml internally and inherits its security properties.
package xml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html/charset"

	"github.com/FocuswithJustin/xml2csv/core/errors"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node is an element of a parsed document. The conversion core only reads
// nodes; nothing in this package mutates the tree after Parse.
type Node struct {
	node *xmlquery.Node
}

// Query is a compiled XPath expression evaluated relative to a Node.
type Query struct {
	expr *xpath.Expr
	src  string
}

// ValidationResult contains the result of a well-formedness check.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a single well-formedness error.
type ValidationError struct {
	Line    int
	Column  int
	Message string
}

// Parse checks data for well-formedness and returns the parsed Document.
func Parse(data []byte) (*Document, error) {
	if result := Validate(data); !result.Valid {
		first := result.Errors[0]
		return nil, &errors.ParseError{Format: "XML", Line: first.Line, Message: first.Message}
	}

	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Message: err.Error(), Err: err}
	}
	return &Document{root: root}, nil
}

// ParseReader reads r to EOF and parses it.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("read", "", err)
	}
	return Parse(data)
}

// Validate checks data for well-formedness.
//
// Security: entity expansion is disabled. Go's xml.Decoder never fetches
// external entities, and the empty Entity map makes any non-predefined
// entity reference a hard error.
func Validate(data []byte) ValidationResult {
	result := ValidationResult{Valid: true}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Entity = map[string]string{}
	decoder.CharsetReader = charset.NewReaderLabel

	sawElement := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, col := decoder.InputPos()
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Line:    line,
				Column:  col,
				Message: err.Error(),
			})
			return result
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}

	if !sawElement && len(bytes.TrimSpace(data)) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Line: 1, Message: "no root element"})
	}
	return result
}

// Root returns the root element of the document, or nil for a document
// without one.
func (d *Document) Root() *Node {
	if d == nil || d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// Compile compiles an XPath expression for use with FindFirst and FindAll.
func Compile(expr string) (*Query, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, &errors.ParseError{Format: "XPath", Message: err.Error(), Err: err}
	}
	return &Query{expr: e, src: expr}, nil
}

// MustCompile is like Compile but panics on an invalid expression.
// It is intended for package-level query variables.
func MustCompile(expr string) *Query {
	q, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return q
}

// String returns the source expression.
func (q *Query) String() string {
	return q.src
}

// Name returns the qualified tag name as written: "prefix:local" or "local".
func (n *Node) Name() string {
	if n == nil || n.node == nil {
		return ""
	}
	if n.node.Prefix != "" {
		return n.node.Prefix + ":" + n.node.Data
	}
	return n.node.Data
}

// Children returns the child element nodes in document order.
func (n *Node) Children() []*Node {
	if n == nil || n.node == nil {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// TextPieces returns the character data of the subtree in document order,
// split at element boundaries: the element's own leading text, then each
// child's pieces followed by the text trailing that child. Adjacent text
// and CDATA merge into one piece; comments and processing instructions do
// not interrupt a piece. Empty pieces are omitted.
func (n *Node) TextPieces() []string {
	if n == nil || n.node == nil {
		return nil
	}

	var pieces []string
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			pieces = append(pieces, run.String())
			run.Reset()
		}
	}

	top := n.node
	cur := top.FirstChild
	for cur != nil {
		switch cur.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			run.WriteString(cur.Data)
		case xmlquery.ElementNode:
			flush()
			if cur.FirstChild != nil {
				cur = cur.FirstChild
				continue
			}
		}

		// Climb past every element whose last child we just left.
		for cur.NextSibling == nil {
			cur = cur.Parent
			if cur == nil || cur == top {
				flush()
				return pieces
			}
			flush()
		}
		cur = cur.NextSibling
	}
	flush()
	return pieces
}

// FindFirst returns the first node matching q relative to n, or nil.
func (n *Node) FindFirst(q *Query) *Node {
	if n == nil || n.node == nil || q == nil {
		return nil
	}
	found := xmlquery.QuerySelector(n.node, q.expr)
	if found == nil {
		return nil
	}
	return &Node{node: found}
}

// FindAll returns every node matching q relative to n, in document order.
func (n *Node) FindAll(q *Query) []*Node {
	if n == nil || n.node == nil || q == nil {
		return nil
	}
	found := xmlquery.QuerySelectorAll(n.node, q.expr)
	result := make([]*Node, len(found))
	for i, f := range found {
		result[i] = &Node{node: f}
	}
	return result
}

// Same reports whether n and other refer to the same element.
func (n *Node) Same(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.node == other.node
}

// Attr returns the value of a specific attribute.
func (n *Node) Attr(name string) string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}
