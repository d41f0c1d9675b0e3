// Package hierarchy flattens an XML element tree into rectangular records.
//
// The conversion runs in two passes:
//
//   - Walk visits every element in document order and emits a Row for each
//     element with non-empty content. A Row carries the full tag path from
//     the root down to the element. Table elements are rendered as Markdown;
//     every other element contributes its normalized text, which includes the
//     text of its descendants, so ancestor and descendant rows deliberately
//     repeat the same words.
//   - ParseRows splits each path into a Section (first tag) and Subsections
//     (remaining tags) and sizes a Schema to the deepest path in the batch.
//
// Schema.Record expands a FlatRow into one value per Schema column, padding
// missing subsection levels with empty strings and rejecting rows deeper
// than the schema.
package hierarchy
