package session

import (
	"fmt"
	"sort"
	"strings"
)

// Entry pairs a record with its position in the full table so a view can be
// edited or deleted through the store.
type Entry struct {
	Index  int    `json:"index"`
	Record Record `json:"record"`
}

// RatingSet is the set of ratings a view keeps.
type RatingSet map[Rating]struct{}

// NewRatingSet returns a set of the given ratings.
func NewRatingSet(ratings ...Rating) RatingSet {
	set := make(RatingSet, len(ratings))
	for _, r := range ratings {
		set[r] = struct{}{}
	}
	return set
}

// AllRatings returns a set of every known rating.
func AllRatings() RatingSet {
	return NewRatingSet(Ratings...)
}

// ParseRatingSet parses rating labels into a set. No labels means every
// known rating.
func ParseRatingSet(labels []string) (RatingSet, error) {
	if len(labels) == 0 {
		return AllRatings(), nil
	}
	set := make(RatingSet, len(labels))
	for _, label := range labels {
		r, err := ParseRating(label)
		if err != nil {
			return nil, fmt.Errorf("ParseRating(%s) > %w", label, err)
		}
		set[r] = struct{}{}
	}
	return set, nil
}

// Contains reports whether r is in the set.
func (s RatingSet) Contains(r Rating) bool {
	_, ok := s[r]
	return ok
}

// Filter returns the records whose content contains search, ignoring case,
// and whose rating is in ratings. An empty search matches every record and
// an empty rating set matches none.
func Filter(records []Record, search string, ratings RatingSet) []Entry {
	needle := fold(search)
	view := []Entry{}
	for i, r := range records {
		if !ratings.Contains(r.Rating) {
			continue
		}
		if needle != "" && !strings.Contains(fold(r.Content), needle) {
			continue
		}
		view = append(view, Entry{Index: i, Record: r})
	}
	return view
}

// SortByDateDescending returns the view ordered newest first. Equal dates keep
// their order in the view. Entries with an unparseable date are placed last in
// their original order and reported.
func SortByDateDescending(view []Entry) ([]Entry, []*DateParseError) {
	type datedEntry struct {
		entry Entry
		unix  int64
	}

	dated := make([]datedEntry, 0, len(view))
	var undated []Entry
	var errs []*DateParseError
	for _, e := range view {
		t, err := e.Record.Time()
		if err != nil {
			undated = append(undated, e)
			errs = append(errs, &DateParseError{Index: e.Index, Record: e.Record, Err: err})
			continue
		}
		dated = append(dated, datedEntry{entry: e, unix: t.Unix()})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].unix > dated[j].unix
	})

	sorted := make([]Entry, 0, len(view))
	for _, d := range dated {
		sorted = append(sorted, d.entry)
	}
	sorted = append(sorted, undated...)
	return sorted, errs
}

// TopN returns at most the first n entries of the view.
func TopN(view []Entry, n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	if n > len(view) {
		n = len(view)
	}
	return view[:n]
}
