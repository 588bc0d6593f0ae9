package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/at-ishikawa/studylog/internal/assets"
	"github.com/at-ishikawa/studylog/internal/form"
	"github.com/at-ishikawa/studylog/internal/pdf"
	"github.com/at-ishikawa/studylog/internal/session"
)

// ReportOptions configures where and how the progress report is written
type ReportOptions struct {
	StudentName     string
	OutputDirectory string
	// TemplatePath overrides the embedded report template when set
	TemplatePath string
	PDF          bool
	GeneratedAt  time.Time
}

// ReportFiles are the paths of the written report
type ReportFiles struct {
	Markdown string
	PDF      string
}

// WriteReport renders every session, whatever its rating, into a Markdown report named after the
// generation date and optionally converts it to PDF.
func WriteReport(editor *form.Editor, opts ReportOptions) (ReportFiles, error) {
	records := editor.Records()
	entries := make([]session.Entry, 0, len(records))
	for i, r := range records {
		entries = append(entries, session.Entry{Index: i, Record: r})
	}
	sorted, dateErrs := session.SortByDateDescending(entries)
	for _, err := range dateErrs {
		slog.Default().Warn("session with an invalid date is reported last",
			"index", err.Index,
			"date", err.Record.Date)
	}
	data := assets.NewReportTemplate(opts.StudentName, opts.GeneratedAt, sorted, editor.Stats())

	var buf bytes.Buffer
	if err := assets.WriteSessionReport(&buf, opts.TemplatePath, data); err != nil {
		return ReportFiles{}, fmt.Errorf("assets.WriteSessionReport() > %w", err)
	}

	if err := os.MkdirAll(opts.OutputDirectory, 0755); err != nil {
		return ReportFiles{}, fmt.Errorf("os.MkdirAll(%s) > %w", opts.OutputDirectory, err)
	}
	markdownPath := filepath.Join(opts.OutputDirectory, "report-"+opts.GeneratedAt.Format("2006-01-02")+".md")
	if err := os.WriteFile(markdownPath, buf.Bytes(), 0644); err != nil {
		return ReportFiles{}, fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
	}
	slog.Default().Debug("wrote report", "path", markdownPath, "sessions", len(sorted))

	files := ReportFiles{Markdown: markdownPath}
	if !opts.PDF {
		return files, nil
	}

	pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath)
	if err != nil {
		return files, fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
	}
	files.PDF = pdfPath
	return files, nil
}
