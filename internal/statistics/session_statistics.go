// Package statistics computes the aggregate views charted over all logged sessions.
package statistics

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/at-ishikawa/studylog/internal/session"
)

// RatingCount is the number of sessions with a rating
type RatingCount struct {
	Rating session.Rating `json:"rating"`
	Count  int            `json:"count"`
}

// RatingShare is a rating's share of all sessions, in percent rounded to one decimal place
type RatingShare struct {
	Rating  session.Rating `json:"rating"`
	Percent float64        `json:"percent"`
}

// TrendPoint is one session's score on its date
type TrendPoint struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// SkippedRecord is a record left out of the trend, with the reason
type SkippedRecord struct {
	Index  int    `json:"index"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// Result holds every aggregate over the full session table
type Result struct {
	Total       int             `json:"total"`
	Counts      []RatingCount   `json:"counts"`
	Percentages []RatingShare   `json:"percentages"`
	Trend       []TrendPoint    `json:"trend"`
	Skipped     []SkippedRecord `json:"skipped,omitempty"`
}

// Aggregate computes rating counts, the score trend in date order, and each
// rating's percentage share over all records.
// Known ratings come first from best to worst, then unknown labels in
// alphabetical order. Ratings without sessions are omitted.
// Records with an unparseable date or an unscored rating are left out of the
// trend and reported in Skipped.
func Aggregate(records []session.Record) Result {
	counts := make(map[session.Rating]int)
	for _, r := range records {
		counts[r.Rating]++
	}

	result := Result{
		Total:       len(records),
		Counts:      []RatingCount{},
		Percentages: []RatingShare{},
	}

	for _, rating := range orderedRatings(counts) {
		count := counts[rating]
		result.Counts = append(result.Counts, RatingCount{Rating: rating, Count: count})
		result.Percentages = append(result.Percentages, RatingShare{
			Rating:  rating,
			Percent: roundToTenth(float64(count) * 100 / float64(len(records))),
		})
	}

	skipped := &skipCollector{}
	result.Trend = buildTrend(records, skipped)
	result.Skipped = skipped.records
	for _, s := range result.Skipped {
		slog.Default().Warn("session left out of the trend",
			"index", s.Index,
			"date", s.Date,
			"reason", s.Reason)
	}

	return result
}

type skipCollector struct {
	records []SkippedRecord
}

func (c *skipCollector) add(index int, record session.Record, reason string) {
	c.records = append(c.records, SkippedRecord{Index: index, Date: record.Date, Reason: reason})
}

func buildTrend(records []session.Record, skipped *skipCollector) []TrendPoint {
	trend := []TrendPoint{}
	for i, r := range records {
		date, err := r.Time()
		if err != nil {
			skipped.add(i, r, (&session.DateParseError{Index: i, Record: r, Err: err}).Error())
			continue
		}
		score, ok := r.Rating.Score()
		if !ok {
			skipped.add(i, r, "unknown rating "+string(r.Rating))
			continue
		}
		trend = append(trend, TrendPoint{Index: i, Date: date, Score: score})
	}

	sort.SliceStable(trend, func(i, j int) bool {
		return trend[i].Date.Before(trend[j].Date)
	})
	return trend
}

func orderedRatings(counts map[session.Rating]int) []session.Rating {
	ordered := make([]session.Rating, 0, len(counts))
	for _, rating := range session.Ratings {
		if counts[rating] > 0 {
			ordered = append(ordered, rating)
		}
	}

	var unknown []session.Rating
	for rating := range counts {
		if !rating.Valid() {
			unknown = append(unknown, rating)
		}
	}
	sort.Slice(unknown, func(i, j int) bool {
		return unknown[i] < unknown[j]
	})
	return append(ordered, unknown...)
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
