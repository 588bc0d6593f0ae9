package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/at-ishikawa/studylog/internal/form"
	"github.com/at-ishikawa/studylog/internal/session"
	"github.com/at-ishikawa/studylog/internal/statistics"
)

const maxBarWidth = 40

var (
	ratingColors = map[session.Rating]*color.Color{
		session.RatingExcellent:   color.New(color.FgGreen, color.Bold),
		session.RatingGood:        color.New(color.FgCyan),
		session.RatingFair:        color.New(color.FgYellow),
		session.RatingNeedsEffort: color.New(color.FgRed),
	}
	unknownRatingColor = color.New(color.FgMagenta)
	warningColor       = color.New(color.FgYellow)
	labelColor         = color.New(color.Bold)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
	barStyles = map[session.Rating]lipgloss.Style{
		session.RatingExcellent:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		session.RatingGood:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		session.RatingFair:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		session.RatingNeedsEffort: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
	unknownBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func ratingColor(r session.Rating) *color.Color {
	if c, ok := ratingColors[r]; ok {
		return c
	}
	return unknownRatingColor
}

func barStyle(r session.Rating) lipgloss.Style {
	if s, ok := barStyles[r]; ok {
		return s
	}
	return unknownBarStyle
}

// RenderList writes the sessions of a view, newest first. Each session shows
// the index used by the edit and delete commands.
func RenderList(w io.Writer, studentName string, view form.View) {
	title := "Sessions"
	if studentName != "" {
		title = "Sessions of " + studentName
	}
	_, _ = fmt.Fprintf(w, "%s (showing %d of %d matches, %d total)\n\n", title, len(view.Entries), view.Matched, view.Total)

	if len(view.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "No sessions found.")
	}
	for _, entry := range view.Entries {
		record := entry.Record
		_, _ = fmt.Fprintf(w, "[%d] %s  %s\n", entry.Index, record.Date, ratingColor(record.Rating).Sprint(record.Rating))
		writeField(w, "Content", record.Content)
		writeField(w, "Did well", record.Strengths)
		writeField(w, "Needs improvement", record.Improvements)
		_, _ = fmt.Fprintln(w)
	}

	for _, warning := range view.Warnings {
		_, _ = warningColor.Fprintf(w, "warning: %s\n", warning)
	}
}

func writeField(w io.Writer, label, value string) {
	if value == "" {
		value = "-"
	}
	lines := strings.Split(value, "\n")
	_, _ = fmt.Fprintf(w, "    %s: %s\n", labelColor.Sprint(label), lines[0])
	for _, line := range lines[1:] {
		_, _ = fmt.Fprintf(w, "      %s\n", line)
	}
}

// RenderStats writes the rating bar chart, the score trend and the percentage
// table of the aggregates.
func RenderStats(w io.Writer, result statistics.Result) {
	if result.Total == 0 {
		_, _ = fmt.Fprintln(w, "No sessions logged yet.")
		return
	}

	labelWidth := 0
	maxCount := 0
	for _, c := range result.Counts {
		labelWidth = max(labelWidth, len([]rune(c.Rating.String())))
		maxCount = max(maxCount, c.Count)
	}

	_, _ = fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Sessions by rating (%d total)", result.Total)))
	for _, c := range result.Counts {
		width := c.Count * maxBarWidth / maxCount
		if width == 0 {
			width = 1
		}
		bar := barStyle(c.Rating).Render(strings.Repeat("█", width))
		_, _ = fmt.Fprintf(w, "%s %s %d\n", padRight(c.Rating.String(), labelWidth), bar, c.Count)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, headerStyle.Render("Progress"))
	if len(result.Trend) == 0 {
		_, _ = fmt.Fprintln(w, dimStyle.Render("No dated sessions."))
	}
	for _, p := range result.Trend {
		bar := strings.Repeat("■", p.Score) + strings.Repeat("·", len(session.Ratings)-p.Score)
		_, _ = fmt.Fprintf(w, "%s %s %d\n", session.FormatDate(p.Date), bar, p.Score)
	}
	if len(result.Skipped) > 0 {
		_, _ = fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d sessions left out of the progress chart", len(result.Skipped))))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, headerStyle.Render("Share"))
	for _, p := range result.Percentages {
		_, _ = fmt.Fprintf(w, "%s %5.1f %%\n", padRight(p.Rating.String(), labelWidth), p.Percent)
	}
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
