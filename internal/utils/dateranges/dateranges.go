// Package dateranges resolves symbolic date-range keys (month, last_month,
// year, all, custom) into concrete day bounds for ledger queries.
package dateranges

import (
	"fmt"
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
)

// Range is a resolved date range. Nil bounds mean unbounded (range=all).
// Bounds are inclusive whole days at midnight UTC.
type Range struct {
	Key   string
	Start *time.Time
	End   *time.Time
}

// Resolve turns a range key and optional custom bounds into a Range.
// Invalid input wraps apperrors.ErrValidation.
func Resolve(key, from, to string, today time.Time) (Range, error) {
	day := truncateToDay(today)

	switch key {
	case "", "month":
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Range{Key: "month", Start: &start, End: &day}, nil
	case "last_month":
		currentMonthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		lastMonthEnd := currentMonthStart.AddDate(0, 0, -1)
		lastMonthStart := time.Date(lastMonthEnd.Year(), lastMonthEnd.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Range{Key: "last_month", Start: &lastMonthStart, End: &lastMonthEnd}, nil
	case "year":
		start := time.Date(day.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return Range{Key: "year", Start: &start, End: &day}, nil
	case "all":
		return Range{Key: "all"}, nil
	case "custom":
		if from == "" || to == "" {
			return Range{}, fmt.Errorf("%w: range=custom requires 'from' and 'to'", apperrors.ErrValidation)
		}
		start, err := time.ParseInLocation("2006-01-02", from, time.UTC)
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid 'from' date %q, expected YYYY-MM-DD", apperrors.ErrValidation, from)
		}
		end, err := time.ParseInLocation("2006-01-02", to, time.UTC)
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid 'to' date %q, expected YYYY-MM-DD", apperrors.ErrValidation, to)
		}
		if end.Before(start) {
			return Range{}, fmt.Errorf("%w: 'to' must not be before 'from'", apperrors.ErrValidation)
		}
		return Range{Key: "custom", Start: &start, End: &end}, nil
	}
	return Range{}, fmt.Errorf("%w: invalid range %q, allowed: month, last_month, year, all, custom", apperrors.ErrValidation, key)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
