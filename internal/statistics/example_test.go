package statistics_test

import (
	"fmt"

	"github.com/at-ishikawa/studylog/internal/session"
	"github.com/at-ishikawa/studylog/internal/statistics"
)

func ExampleAggregate() {
	records := []session.Record{
		{Date: "01/01/2024", Content: "Fractions", Rating: session.RatingGood},
		{Date: "15/01/2024", Content: "Decimals", Rating: session.RatingExcellent},
		{Date: "08/01/2024", Content: "Long division", Rating: session.RatingGood},
	}

	result := statistics.Aggregate(records)
	for _, c := range result.Counts {
		fmt.Printf("%s: %d\n", c.Rating, c.Count)
	}
	for _, p := range result.Percentages {
		fmt.Printf("%s: %.1f %%\n", p.Rating, p.Percent)
	}
	for _, point := range result.Trend {
		fmt.Printf("%s -> %d\n", session.FormatDate(point.Date), point.Score)
	}
	// Output:
	// Excellent: 1
	// Good: 2
	// Excellent: 33.3 %
	// Good: 66.7 %
	// 01/01/2024 -> 3
	// 08/01/2024 -> 3
	// 15/01/2024 -> 4
}
