// Package form holds the state of the session form: which record, if any, is
// being edited, and the intents a UI forwards to the record store.
package form

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/session"
	"github.com/at-ishikawa/studylog/internal/statistics"
)

// ErrInvalidDraft is returned when a submitted draft fails validation.
var ErrInvalidDraft = errors.New("invalid session")

//go:generate mockgen -source=editor.go -destination=../mocks/form/mock_store.go -package=mock_form Store

// Store is the record table the form edits.
type Store interface {
	Records() []session.Record
	At(index int) (session.Record, error)
	Add(record session.Record) error
	UpdateAt(index int, record session.Record) error
	DeleteAt(index int) error
}

// Draft is the content of the form.
type Draft struct {
	Date         string `json:"date" validate:"required,session_date"`
	Content      string `json:"content"`
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`
	Rating       string `json:"rating" validate:"required,session_rating"`
}

// Query selects the sessions shown in the list.
type Query struct {
	Search  string
	Ratings session.RatingSet
	// Limit caps the entries; zero uses the editor's limit and a negative value shows all.
	Limit int
}

// View is the filtered, newest-first list of sessions.
type View struct {
	Entries  []session.Entry `json:"entries"`
	Matched  int             `json:"matched"`
	Total    int             `json:"total"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Editor is the per-process state of the form. At most one record is in edit
// mode at a time; saving in edit mode updates that record instead of adding one.
type Editor struct {
	store     Store
	limit     int
	editIndex int
	editing   bool
	// unsaved is the position of a record the store kept after its add failed to save.
	unsaved    int
	hasUnsaved bool
	validate   *validator.Validate
	translator ut.Translator
	now        func() time.Time
}

// NewEditor creates an editor over store whose list shows at most limit entries.
func NewEditor(store Store, limit int) (*Editor, error) {
	validate, trans, err := config.NewValidator("json")
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	if err := registerDraftValidations(validate, trans); err != nil {
		return nil, err
	}

	return &Editor{
		store:      store,
		limit:      limit,
		validate:   validate,
		translator: trans,
		now:        time.Now,
	}, nil
}

// EditIndex returns the position of the record in edit mode.
func (e *Editor) EditIndex() (int, bool) {
	return e.editIndex, e.editing
}

// NewDraft returns an empty draft dated today.
func (e *Editor) NewDraft() Draft {
	return Draft{
		Date:   session.FormatDate(e.now()),
		Rating: string(session.RatingExcellent),
	}
}

// BeginEdit puts the record at index in edit mode and returns its fields.
// A date that cannot be parsed is replaced with today's date.
func (e *Editor) BeginEdit(index int) (Draft, error) {
	record, err := e.store.At(index)
	if err != nil {
		return Draft{}, fmt.Errorf("store.At(%d) > %w", index, err)
	}

	var date string
	if t, err := record.Time(); err != nil {
		slog.Default().Warn("replacing an invalid date with today's date",
			"index", index,
			"date", record.Date)
		date = session.FormatDate(e.now())
	} else {
		date = session.FormatDate(t)
	}

	e.editIndex = index
	e.editing = true
	return Draft{
		Date:         date,
		Content:      record.Content,
		Strengths:    record.Strengths,
		Improvements: record.Improvements,
		Rating:       string(record.Rating),
	}, nil
}

// CancelEdit leaves edit mode without saving.
func (e *Editor) CancelEdit() {
	e.editIndex = 0
	e.editing = false
}

// Submit saves the draft: it updates the record in edit mode and leaves edit
// mode, or adds a new record. When saving fails, edit mode is kept so the
// save can be retried. A retry after a failed add saves over the record the
// store kept in memory instead of adding it twice.
func (e *Editor) Submit(draft Draft) error {
	record, err := e.toRecord(draft)
	if err != nil {
		return err
	}

	if !e.editing {
		return e.add(record)
	}

	if err := e.store.UpdateAt(e.editIndex, record); err != nil {
		if errors.Is(err, session.ErrIndexOutOfRange) {
			e.CancelEdit()
		}
		return fmt.Errorf("store.UpdateAt(%d) > %w", e.editIndex, err)
	}
	e.CancelEdit()
	return nil
}

func (e *Editor) add(record session.Record) error {
	if e.hasUnsaved {
		if err := e.store.UpdateAt(e.unsaved, record); err != nil {
			if errors.Is(err, session.ErrIndexOutOfRange) {
				e.hasUnsaved = false
			}
			return fmt.Errorf("store.UpdateAt(%d) > %w", e.unsaved, err)
		}
		e.hasUnsaved = false
		return nil
	}

	before := len(e.store.Records())
	if err := e.store.Add(record); err != nil {
		if len(e.store.Records()) == before+1 {
			e.unsaved = before
			e.hasUnsaved = true
		}
		return fmt.Errorf("store.Add() > %w", err)
	}
	return nil
}

// Delete removes the record at index. The record in edit mode keeps pointing
// at the same record; edit mode ends if that record is the one deleted.
func (e *Editor) Delete(index int) error {
	if err := e.store.DeleteAt(index); err != nil {
		return fmt.Errorf("store.DeleteAt(%d) > %w", index, err)
	}

	if e.editing {
		switch {
		case index == e.editIndex:
			e.CancelEdit()
		case index < e.editIndex:
			e.editIndex--
		}
	}
	if e.hasUnsaved {
		switch {
		case index == e.unsaved:
			e.hasUnsaved = false
		case index < e.unsaved:
			e.unsaved--
		}
	}
	return nil
}

// View returns the sessions matching the query, newest first.
func (e *Editor) View(query Query) View {
	records := e.store.Records()
	ratings := query.Ratings
	if ratings == nil {
		ratings = session.AllRatings()
	}

	filtered := session.Filter(records, query.Search, ratings)
	sorted, dateErrs := session.SortByDateDescending(filtered)

	limit := query.Limit
	if limit == 0 {
		limit = e.limit
	}
	if limit < 0 {
		limit = len(sorted)
	}

	view := View{
		Entries: session.TopN(sorted, limit),
		Matched: len(filtered),
		Total:   len(records),
	}
	for _, err := range dateErrs {
		slog.Default().Warn("session with an invalid date is listed last",
			"index", err.Index,
			"date", err.Record.Date)
		view.Warnings = append(view.Warnings, err.Error())
	}
	return view
}

// Records returns every record in stored order.
func (e *Editor) Records() []session.Record {
	return e.store.Records()
}

// Stats aggregates every record.
func (e *Editor) Stats() statistics.Result {
	return statistics.Aggregate(e.store.Records())
}

func (e *Editor) toRecord(draft Draft) (session.Record, error) {
	if err := e.validate.Struct(draft); err != nil {
		messages := config.TranslateErrors(err, e.translator)
		return session.Record{}, fmt.Errorf("%w: %s", ErrInvalidDraft, strings.Join(messages, ", "))
	}

	date, err := session.ParseDate(draft.Date)
	if err != nil {
		return session.Record{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	rating, err := session.ParseRating(draft.Rating)
	if err != nil {
		return session.Record{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	return session.Record{
		Date:         session.FormatDate(date),
		Content:      draft.Content,
		Strengths:    draft.Strengths,
		Improvements: draft.Improvements,
		Rating:       rating,
	}, nil
}

func registerDraftValidations(validate *validator.Validate, trans ut.Translator) error {
	validations := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{
			tag: "session_date",
			fn: func(fl validator.FieldLevel) bool {
				_, err := session.ParseDate(fl.Field().String())
				return err == nil
			},
			message: "{0} must be a date in DD/MM/YYYY format",
		},
		{
			tag: "session_rating",
			fn: func(fl validator.FieldLevel) bool {
				_, err := session.ParseRating(fl.Field().String())
				return err == nil
			},
			message: "{0} must be one of Excellent, Good, Fair, Needs Effort",
		},
	}

	for _, v := range validations {
		if err := validate.RegisterValidation(v.tag, v.fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", v.tag, err)
		}
		message := v.message
		tag := v.tag
		if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		}); err != nil {
			return fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}
	return nil
}
