package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/studylog/internal/cli"
	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/form"
	"github.com/at-ishikawa/studylog/internal/session"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func openEditor(cfg *config.Config) (*form.Editor, *session.Store, error) {
	store, err := session.Open(cfg.Storage.DataFile)
	if err != nil {
		return nil, nil, fmt.Errorf("session.Open(%s) > %w", cfg.Storage.DataFile, err)
	}
	editor, err := form.NewEditor(store, cfg.View.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("form.NewEditor() > %w", err)
	}
	return editor, store, nil
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid session index %q: %w", arg, err)
	}
	return index, nil
}

// sessionFlags are the form fields that can be given on the command line
type sessionFlags struct {
	date         string
	content      string
	strengths    string
	improvements string
	rating       string
}

var sessionFlagFields = map[string]cli.Field{
	"date":         cli.FieldDate,
	"content":      cli.FieldContent,
	"strengths":    cli.FieldStrengths,
	"improvements": cli.FieldImprovements,
	"rating":       cli.FieldRating,
}

func (f *sessionFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.date, "date", "", "session date in DD/MM/YYYY format")
	flags.StringVar(&f.content, "content", "", "what was studied")
	flags.StringVar(&f.strengths, "strengths", "", "what went well")
	flags.StringVar(&f.improvements, "improvements", "", "what needs improvement")
	flags.StringVar(&f.rating, "rating", "", "one of Excellent, Good, Fair, Needs Effort")
}

// apply overwrites the draft with the flags set on the command line and
// returns which fields they cover.
func (f *sessionFlags) apply(flags *pflag.FlagSet, draft form.Draft) (form.Draft, map[cli.Field]bool) {
	values := map[string]string{
		"date":         f.date,
		"content":      f.content,
		"strengths":    f.strengths,
		"improvements": f.improvements,
		"rating":       f.rating,
	}
	targets := map[cli.Field]*string{
		cli.FieldDate:         &draft.Date,
		cli.FieldContent:      &draft.Content,
		cli.FieldStrengths:    &draft.Strengths,
		cli.FieldImprovements: &draft.Improvements,
		cli.FieldRating:       &draft.Rating,
	}

	provided := make(map[cli.Field]bool)
	for name, field := range sessionFlagFields {
		if !flags.Changed(name) {
			continue
		}
		*targets[field] = values[name]
		provided[field] = true
	}
	return draft, provided
}
