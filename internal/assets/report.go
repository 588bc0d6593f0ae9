package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/studylog/internal/session"
	"github.com/at-ishikawa/studylog/internal/statistics"
)

const sessionReportTemplateName = "session-report.md.go.tmpl"

//go:embed templates/session-report.md.go.tmpl
var fallbackSessionReportTemplate string

// ReportTemplate is the data of the progress report template
type ReportTemplate struct {
	StudentName string
	GeneratedAt time.Time
	Total       int
	// Sessions are ordered newest first
	Sessions []session.Record
	Ratings  []ReportRating
	Trend    []statistics.TrendPoint
}

// ReportRating is one row of the rating table
type ReportRating struct {
	Rating  session.Rating
	Count   int
	Percent float64
}

// NewReportTemplate builds the report data from a date-sorted view and the aggregates of every record
func NewReportTemplate(studentName string, generatedAt time.Time, sorted []session.Entry, stats statistics.Result) ReportTemplate {
	sessions := make([]session.Record, 0, len(sorted))
	for _, e := range sorted {
		sessions = append(sessions, e.Record)
	}

	percents := make(map[session.Rating]float64, len(stats.Percentages))
	for _, p := range stats.Percentages {
		percents[p.Rating] = p.Percent
	}
	ratings := make([]ReportRating, 0, len(stats.Counts))
	for _, c := range stats.Counts {
		ratings = append(ratings, ReportRating{
			Rating:  c.Rating,
			Count:   c.Count,
			Percent: percents[c.Rating],
		})
	}

	return ReportTemplate{
		StudentName: studentName,
		GeneratedAt: generatedAt,
		Total:       stats.Total,
		Sessions:    sessions,
		Ratings:     ratings,
		Trend:       stats.Trend,
	}
}

// WriteSessionReport renders the progress report as Markdown.
// An empty templatePath uses the embedded template.
func WriteSessionReport(output io.Writer, templatePath string, templateData ReportTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, sessionReportTemplateName, fallbackSessionReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
