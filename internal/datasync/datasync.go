// Package datasync copies the session table between the CSV file and its database mirror.
package datasync

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studylog/internal/session"
)

// Table is the CSV-backed session table.
type Table interface {
	Records() []session.Record
	Replace(records []session.Record) error
}

// SyncResult tracks how the destination changes, comparing rows by position.
type SyncResult struct {
	New       int
	Updated   int
	Deleted   int
	Unchanged int
}

// SyncOptions controls sync behavior.
type SyncOptions struct {
	// DryRun reports the changes and prints the rows as YAML without writing them.
	DryRun bool
}

// Exporter writes the CSV table to the database mirror.
type Exporter struct {
	table  Table
	repo   session.Repository
	writer io.Writer
}

// NewExporter creates a new Exporter.
func NewExporter(table Table, repo session.Repository, writer io.Writer) *Exporter {
	return &Exporter{
		table:  table,
		repo:   repo,
		writer: writer,
	}
}

// Export replaces the mirrored rows with the CSV table.
func (e *Exporter) Export(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	source := e.table.Records()
	current, err := e.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAll() > %w", err)
	}

	result := compare(e.writer, source, current)
	if opts.DryRun {
		if err := writePreview(e.writer, source); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := e.repo.ReplaceAll(ctx, source); err != nil {
		return nil, fmt.Errorf("ReplaceAll() > %w", err)
	}
	return result, nil
}

// Importer writes the database mirror back to the CSV table.
type Importer struct {
	table  Table
	repo   session.Repository
	writer io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(table Table, repo session.Repository, writer io.Writer) *Importer {
	return &Importer{
		table:  table,
		repo:   repo,
		writer: writer,
	}
}

// Import replaces the CSV table with the mirrored rows.
func (imp *Importer) Import(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	source, err := imp.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAll() > %w", err)
	}

	result := compare(imp.writer, source, imp.table.Records())
	if opts.DryRun {
		if err := writePreview(imp.writer, source); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := imp.table.Replace(source); err != nil {
		return nil, fmt.Errorf("Replace() > %w", err)
	}
	return result, nil
}

func compare(w io.Writer, source, current []session.Record) *SyncResult {
	var result SyncResult
	for i, r := range source {
		switch {
		case i >= len(current):
			fmt.Fprintf(w, "  [NEW]  #%d %s %q\n", i, r.Date, r.Content)
			result.New++
		case current[i] != r:
			fmt.Fprintf(w, "  [UPDATE]  #%d %s %q\n", i, r.Date, r.Content)
			result.Updated++
		default:
			result.Unchanged++
		}
	}
	for i := len(source); i < len(current); i++ {
		fmt.Fprintf(w, "  [DELETE]  #%d %s %q\n", i, current[i].Date, current[i].Content)
		result.Deleted++
	}
	return &result
}

type previewRow struct {
	Position       int `yaml:"position"`
	session.Record `yaml:",inline"`
}

func writePreview(w io.Writer, records []session.Record) error {
	rows := make([]previewRow, 0, len(records))
	for i, r := range records {
		rows = append(rows, previewRow{Position: i, Record: r})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}
