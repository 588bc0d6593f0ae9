package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studylog/internal/session"
)

func mustParseDate(value string) time.Time {
	t, err := session.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name            string
		records         []session.Record
		wantTotal       int
		wantCounts      []RatingCount
		wantPercentages []RatingShare
		wantTrend       []TrendPoint
		wantSkipped     []int
	}{
		{
			name:            "no records",
			records:         []session.Record{},
			wantCounts:      []RatingCount{},
			wantPercentages: []RatingShare{},
			wantTrend:       []TrendPoint{},
		},
		{
			name: "counts, shares, and trend in date order",
			records: []session.Record{
				{Date: "15/01/2024", Rating: session.RatingExcellent},
				{Date: "01/01/2024", Rating: session.RatingGood},
				{Date: "10/01/2024", Rating: session.RatingGood},
				{Date: "05/01/2024", Rating: session.RatingNeedsEffort},
			},
			wantTotal: 4,
			wantCounts: []RatingCount{
				{Rating: session.RatingExcellent, Count: 1},
				{Rating: session.RatingGood, Count: 2},
				{Rating: session.RatingNeedsEffort, Count: 1},
			},
			wantPercentages: []RatingShare{
				{Rating: session.RatingExcellent, Percent: 25},
				{Rating: session.RatingGood, Percent: 50},
				{Rating: session.RatingNeedsEffort, Percent: 25},
			},
			wantTrend: []TrendPoint{
				{Index: 1, Date: mustParseDate("01/01/2024"), Score: 3},
				{Index: 3, Date: mustParseDate("05/01/2024"), Score: 1},
				{Index: 2, Date: mustParseDate("10/01/2024"), Score: 3},
				{Index: 0, Date: mustParseDate("15/01/2024"), Score: 4},
			},
		},
		{
			name: "thirds are rounded to one decimal place",
			records: []session.Record{
				{Date: "01/01/2024", Rating: session.RatingFair},
				{Date: "02/01/2024", Rating: session.RatingGood},
				{Date: "03/01/2024", Rating: session.RatingExcellent},
			},
			wantTotal: 3,
			wantCounts: []RatingCount{
				{Rating: session.RatingExcellent, Count: 1},
				{Rating: session.RatingGood, Count: 1},
				{Rating: session.RatingFair, Count: 1},
			},
			wantPercentages: []RatingShare{
				{Rating: session.RatingExcellent, Percent: 33.3},
				{Rating: session.RatingGood, Percent: 33.3},
				{Rating: session.RatingFair, Percent: 33.3},
			},
			wantTrend: []TrendPoint{
				{Index: 0, Date: mustParseDate("01/01/2024"), Score: 2},
				{Index: 1, Date: mustParseDate("02/01/2024"), Score: 3},
				{Index: 2, Date: mustParseDate("03/01/2024"), Score: 4},
			},
		},
		{
			name: "bad dates and unknown ratings are counted but left out of the trend",
			records: []session.Record{
				{Date: "someday", Rating: session.RatingGood},
				{Date: "02/01/2024", Rating: session.Rating("Superb")},
				{Date: "03/01/2024", Rating: session.RatingGood},
				{Date: "04/01/2024", Rating: session.Rating("Average")},
			},
			wantTotal: 4,
			wantCounts: []RatingCount{
				{Rating: session.RatingGood, Count: 2},
				{Rating: session.Rating("Average"), Count: 1},
				{Rating: session.Rating("Superb"), Count: 1},
			},
			wantPercentages: []RatingShare{
				{Rating: session.RatingGood, Percent: 50},
				{Rating: session.Rating("Average"), Percent: 25},
				{Rating: session.Rating("Superb"), Percent: 25},
			},
			wantTrend: []TrendPoint{
				{Index: 2, Date: mustParseDate("03/01/2024"), Score: 3},
			},
			wantSkipped: []int{0, 1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.records)

			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Equal(t, tt.wantCounts, got.Counts)
			assert.Equal(t, tt.wantPercentages, got.Percentages)
			assert.Equal(t, tt.wantTrend, got.Trend)

			var skipped []int
			for _, s := range got.Skipped {
				skipped = append(skipped, s.Index)
			}
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestAggregate_PercentagesSumToHundred(t *testing.T) {
	ratings := []session.Rating{
		session.RatingExcellent, session.RatingGood, session.RatingFair,
		session.RatingNeedsEffort, session.RatingGood, session.RatingGood, session.RatingFair,
	}
	var records []session.Record
	for i, r := range ratings {
		records = append(records, session.Record{Date: time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC).Format(session.DateLayout), Rating: r})
	}

	got := Aggregate(records)
	require.Len(t, got.Percentages, 4)

	var sum float64
	for _, p := range got.Percentages {
		sum += p.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.1*float64(len(got.Percentages)))
}

func TestAggregate_SkippedReason(t *testing.T) {
	got := Aggregate([]session.Record{{Date: "31/02/2024", Rating: session.RatingGood}})
	require.Len(t, got.Skipped, 1)
	assert.Equal(t, "31/02/2024", got.Skipped[0].Date)
	assert.Contains(t, got.Skipped[0].Reason, `invalid date "31/02/2024"`)
}
