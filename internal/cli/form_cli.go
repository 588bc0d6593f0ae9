package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studylog/internal/form"
	"github.com/at-ishikawa/studylog/internal/session"
)

// Field is one input of the session form
type Field int

const (
	FieldDate Field = iota
	FieldContent
	FieldStrengths
	FieldImprovements
	FieldRating
)

// ClearAnswer empties a text field that has a default.
const ClearAnswer = "-"

// FormCLI asks for the fields of the session form on a terminal
type FormCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// NewFormCLI creates a form reading answers from stdin and writing prompts to stdout
func NewFormCLI(stdin io.Reader, stdout io.Writer) *FormCLI {
	return &FormCLI{
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

// Fill asks for every field that was not provided, offering the value in the
// draft as the default. An empty answer keeps the default and ClearAnswer
// empties a text field.
func (cli *FormCLI) Fill(draft form.Draft, provided map[Field]bool) (form.Draft, error) {
	prompts := []struct {
		field     Field
		label     string
		value     *string
		clearable bool
	}{
		{FieldDate, "Date (DD/MM/YYYY)", &draft.Date, false},
		{FieldContent, "Content", &draft.Content, true},
		{FieldStrengths, "Did well", &draft.Strengths, true},
		{FieldImprovements, "Needs improvement", &draft.Improvements, true},
	}
	for _, p := range prompts {
		if provided[p.field] {
			continue
		}
		answer, err := cli.prompt(p.label, *p.value)
		if err != nil {
			return draft, err
		}
		if p.clearable && answer == ClearAnswer {
			answer = ""
		}
		*p.value = answer
	}

	if !provided[FieldRating] {
		rating, err := cli.promptRating(draft.Rating)
		if err != nil {
			return draft, err
		}
		draft.Rating = rating
	}
	return draft, nil
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (cli *FormCLI) Confirm(question string) (bool, error) {
	answer, err := cli.prompt(question+" (y/N)", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (cli *FormCLI) prompt(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s ", label)
		_, _ = cli.italic.Fprintf(cli.stdoutWriter, "[%s]", defaultValue)
		_, _ = fmt.Fprint(cli.stdoutWriter, ": ")
	} else {
		_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s: ", label)
	}

	line, err := cli.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("stdinReader.ReadString() > %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", fmt.Errorf("no answer for %s: %w", label, io.ErrUnexpectedEOF)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// promptRating accepts a rating label or its number in the list.
func (cli *FormCLI) promptRating(defaultValue string) (string, error) {
	options := make([]string, 0, len(session.Ratings))
	for i, r := range session.Ratings {
		options = append(options, fmt.Sprintf("%d %s", i+1, r))
	}
	label := fmt.Sprintf("Rating (%s)", strings.Join(options, ", "))

	for {
		answer, err := cli.prompt(label, defaultValue)
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(session.Ratings) {
			return string(session.Ratings[n-1]), nil
		}
		rating, err := session.ParseRating(answer)
		if err == nil {
			return string(rating), nil
		}
		_, _ = fmt.Fprintln(cli.stdoutWriter, err)
	}
}
