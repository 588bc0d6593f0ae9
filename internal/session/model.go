// Package session provides the study session record, its CSV storage, and the
// derived views used to browse it.
package session

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Rating is the tutor's overall assessment of a session.
type Rating string

const (
	RatingExcellent   Rating = "Excellent"
	RatingGood        Rating = "Good"
	RatingFair        Rating = "Fair"
	RatingNeedsEffort Rating = "Needs Effort"
)

// Ratings lists every known rating from the best to the worst.
var Ratings = []Rating{
	RatingExcellent,
	RatingGood,
	RatingFair,
	RatingNeedsEffort,
}

var ratingScores = map[Rating]int{
	RatingNeedsEffort: 1,
	RatingFair:        2,
	RatingGood:        3,
	RatingExcellent:   4,
}

// ratingAliases maps folded labels to ratings, including the labels written by
// the first Vietnamese version of the log.
var ratingAliases = map[string]Rating{
	fold("Excellent"):    RatingExcellent,
	fold("Good"):         RatingGood,
	fold("Fair"):         RatingFair,
	fold("Needs Effort"): RatingNeedsEffort,
	fold("NeedsEffort"):  RatingNeedsEffort,
	fold("Xuất sắc"):     RatingExcellent,
	fold("Tốt"):          RatingGood,
	fold("Khá"):          RatingFair,
	fold("Cần cố gắng"):  RatingNeedsEffort,
}

// ParseRating returns the rating matching the label, ignoring case.
func ParseRating(label string) (Rating, error) {
	rating, ok := ratingAliases[fold(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("unknown rating %q: must be one of %s", label, ratingNames())
	}
	return rating, nil
}

// NormalizeRating returns the canonical rating for a known label and keeps
// unknown labels as they are.
func NormalizeRating(label string) Rating {
	if rating, err := ParseRating(label); err == nil {
		return rating
	}
	return Rating(strings.TrimSpace(label))
}

// Score returns the ordinal score used by trend charts.
// Unknown ratings have no score.
func (r Rating) Score() (int, bool) {
	score, ok := ratingScores[r]
	return score, ok
}

// Valid reports whether r is one of the known ratings.
func (r Rating) Valid() bool {
	_, ok := ratingScores[r]
	return ok
}

func (r Rating) String() string {
	return string(r)
}

func ratingNames() string {
	names := make([]string, 0, len(Ratings))
	for _, r := range Ratings {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

// Record is one logged study session.
type Record struct {
	Date         string `json:"date" yaml:"date"`
	Content      string `json:"content" yaml:"content"`
	Strengths    string `json:"strengths" yaml:"strengths"`
	Improvements string `json:"improvements" yaml:"improvements"`
	Rating       Rating `json:"rating" yaml:"rating"`
}

func fold(s string) string {
	return cases.Fold().String(s)
}
