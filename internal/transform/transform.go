// Package transform turns a parsed document into a flattened dataset.
package transform

import (
	"github.com/FocuswithJustin/xml2csv/core/errors"
	"github.com/FocuswithJustin/xml2csv/core/hierarchy"
	"github.com/FocuswithJustin/xml2csv/core/xml"
	"github.com/FocuswithJustin/xml2csv/internal/logging"
)

// Transformer converts a document into rows ready for a write client.
type Transformer interface {
	Transform(doc *xml.Document) (*hierarchy.Dataset, error)
}

// XMLTransformer walks the document hierarchy and flattens each row into
// the fixed column schema.
type XMLTransformer struct{}

// New returns an XMLTransformer.
func New() *XMLTransformer {
	return &XMLTransformer{}
}

// Transform implements Transformer.
func (XMLTransformer) Transform(doc *xml.Document) (*hierarchy.Dataset, error) {
	root := doc.Root()
	if root == nil {
		return nil, errors.NewNotFound("root element", "")
	}

	rows := hierarchy.Walk(root)
	logging.Info("Extracted rows from XML", "rows", len(rows))

	ds := hierarchy.ParseRows(rows)
	logging.Info("Transformed rows",
		"rows", len(ds.Rows),
		"max_levels", ds.Schema.Levels(),
	)
	return ds, nil
}
