// Package processor runs one conversion: read the document, transform it
// into a flattened dataset, and hand the dataset to the writer.
package processor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/xml2csv/core/cas"
	"github.com/FocuswithJustin/xml2csv/core/errors"
	"github.com/FocuswithJustin/xml2csv/internal/clients"
	"github.com/FocuswithJustin/xml2csv/internal/logging"
	"github.com/FocuswithJustin/xml2csv/internal/transform"
)

// Processor sequences a reader and a writer around a transformer.
type Processor struct {
	reader clients.ReadClient
	writer clients.WriteClient
}

// Report summarizes a finished run.
type Report struct {
	RunID    string          `json:"run_id"`
	Rows     int             `json:"rows"`
	Levels   int             `json:"levels"`
	Columns  []string        `json:"columns,omitempty"`
	Skipped  bool            `json:"skipped"`
	Checksum *cas.HashResult `json:"checksum,omitempty"`
	Duration time.Duration   `json:"duration"`
}

// New creates a Processor.
func New(reader clients.ReadClient, writer clients.WriteClient) *Processor {
	return &Processor{reader: reader, writer: writer}
}

// Start runs the conversion. When the reader finds no XML data the write is
// skipped and the report is marked Skipped.
func (p *Processor) Start(ctx context.Context, t transform.Transformer) (*Report, error) {
	if p.reader == nil || p.writer == nil || t == nil {
		return nil, errors.NewValidation("processor", "reader, writer and transformer are required")
	}

	report := &Report{RunID: uuid.New().String()}
	ctx = logging.WithRunID(ctx, report.RunID)
	started := time.Now()
	logging.InfoContext(ctx, "Started processing")

	stageStart := time.Now()
	doc, err := p.reader.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	logging.Stage(ctx, "read", time.Since(stageStart))

	if doc == nil || doc.Root() == nil {
		logging.WarnContext(ctx, "No XML data found")
		report.Skipped = true
		report.Duration = time.Since(started)
		return report, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	ds, err := t.Transform(doc)
	if err != nil {
		return nil, errors.Wrap(err, "transform")
	}
	logging.Stage(ctx, "transform", time.Since(stageStart), "rows", len(ds.Rows))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	if err := p.writer.Write(ctx, ds); err != nil {
		return nil, errors.Wrap(err, "write")
	}
	logging.Stage(ctx, "write", time.Since(stageStart))

	report.Rows = len(ds.Rows)
	report.Levels = ds.Schema.Levels()
	report.Columns = append([]string(nil), ds.Schema...)
	if cs, ok := p.writer.(clients.Checksummer); ok {
		report.Checksum = cs.Checksum()
	}
	report.Duration = time.Since(started)

	logging.InfoContext(ctx, "Finished processing",
		"rows", report.Rows,
		"levels", report.Levels,
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report, nil
}
