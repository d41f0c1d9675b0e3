package hierarchy

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/xml2csv/core/errors"
)

// Fixed column names.
const (
	ColumnSection            = "Section"
	ColumnCombinedSubsection = "CombinedSubsection"
	ColumnContent            = "Content"

	// SubsectionSeparator joins the subsection path in CombinedSubsection.
	SubsectionSeparator = " > "
)

// FlatRow is a Row reshaped into fixed fields. Subsections keeps the
// variable-length path below Section for expansion by Schema.Record.
type FlatRow struct {
	Section            string
	CombinedSubsection string
	Subsections        []string
	Content            string
}

// Schema is the ordered list of output column names:
// Section, CombinedSubsection, Subsection Level 1..M, Content.
type Schema []string

// Dataset is a batch of flattened rows and the schema they are written with.
type Dataset struct {
	Rows   []FlatRow
	Schema Schema
}

// SubsectionColumn returns the column name for 1-based subsection level n.
func SubsectionColumn(n int) string {
	return fmt.Sprintf("Subsection Level %d", n)
}

// NewSchema builds the schema for a batch whose deepest row has levels
// subsections.
func NewSchema(levels int) Schema {
	if levels < 0 {
		levels = 0
	}
	s := make(Schema, 0, levels+3)
	s = append(s, ColumnSection, ColumnCombinedSubsection)
	for i := 1; i <= levels; i++ {
		s = append(s, SubsectionColumn(i))
	}
	return append(s, ColumnContent)
}

// Levels returns the number of Subsection Level columns.
func (s Schema) Levels() int {
	if len(s) < 3 {
		return 0
	}
	return len(s) - 3
}

// Record expands row into one value per schema column. Subsection levels the
// row does not reach are left empty. A row with more subsections than the
// schema has levels is rejected with a SchemaError.
func (s Schema) Record(row FlatRow) ([]string, error) {
	levels := s.Levels()
	if len(row.Subsections) > levels {
		return nil, &errors.SchemaError{Row: -1, Levels: len(row.Subsections), Max: levels}
	}

	rec := make([]string, 0, len(s))
	rec = append(rec, row.Section, row.CombinedSubsection)
	for i := 0; i < levels; i++ {
		if i < len(row.Subsections) {
			rec = append(rec, row.Subsections[i])
		} else {
			rec = append(rec, "")
		}
	}
	return append(rec, row.Content), nil
}

// Records expands every row of the dataset, reporting the index of the first
// row that does not fit the schema.
func (d *Dataset) Records() ([][]string, error) {
	out := make([][]string, 0, len(d.Rows))
	for i, row := range d.Rows {
		rec, err := d.Schema.Record(row)
		if err != nil {
			var se *errors.SchemaError
			if errors.As(err, &se) {
				se.Row = i
			}
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Flatten converts a single Row. An empty hierarchy yields an empty Section.
func Flatten(row Row) FlatRow {
	var section string
	var subsections []string
	if len(row.Hierarchy) > 0 {
		section = row.Hierarchy[0]
		subsections = append([]string(nil), row.Hierarchy[1:]...)
	}
	return FlatRow{
		Section:            section,
		CombinedSubsection: strings.Join(subsections, SubsectionSeparator),
		Subsections:        subsections,
		Content:            row.Content,
	}
}

// ParseRows flattens rows and sizes the schema to the deepest subsection
// path among them.
func ParseRows(rows []Row) *Dataset {
	flat := make([]FlatRow, 0, len(rows))
	maxLevels := 0
	for _, row := range rows {
		fr := Flatten(row)
		if len(fr.Subsections) > maxLevels {
			maxLevels = len(fr.Subsections)
		}
		flat = append(flat, fr)
	}
	return &Dataset{Rows: flat, Schema: NewSchema(maxLevels)}
}
