package daterange

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"ucode/ucode_go_report_builder_service/config"
)

// Range is a resolved time window, inclusive on both ends so it can feed a
// BETWEEN directly.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Resolver turns a relative date token ("@last7Days", "@thisMonth") into a
// concrete window against the injected clock.
type Resolver interface {
	Resolve(token string) (Range, error)
}

type resolver struct {
	now func() time.Time
}

// NewResolver builds a Resolver on the given clock. Pass nil for the system
// clock; tests inject a fixed one.
func NewResolver(now func() time.Time) Resolver {
	if now == nil {
		now = time.Now
	}

	return &resolver{now: now}
}

// IsRelativeToken reports whether the value carries the reserved relative
// date prefix.
func IsRelativeToken(value string) bool {
	return strings.HasPrefix(value, config.RelativeDatePrefix) &&
		len(value) > len(config.RelativeDatePrefix)
}

func (r *resolver) Resolve(token string) (Range, error) {
	name := strings.TrimPrefix(token, config.RelativeDatePrefix)
	now := r.now()

	switch name {
	case "today":
		return dayRange(now), nil
	case "yesterday":
		return dayRange(now.AddDate(0, 0, -1)), nil
	case "last7Days":
		return trailingDays(now, 7), nil
	case "last30Days":
		return trailingDays(now, 30), nil
	case "last90Days":
		return trailingDays(now, 90), nil
	case "thisWeek":
		return weekRange(now), nil
	case "lastWeek":
		return weekRange(now.AddDate(0, 0, -7)), nil
	case "thisMonth":
		return monthRange(now), nil
	case "lastMonth":
		return monthRange(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)), nil
	case "thisQuarter":
		return quarterRange(now), nil
	case "lastQuarter":
		return quarterRange(startOfQuarter(now).AddDate(0, 0, -1)), nil
	case "thisYear":
		return yearRange(now), nil
	case "lastYear":
		return yearRange(now.AddDate(-1, 0, 0)), nil
	default:
		return Range{}, errors.Errorf("unknown relative date token %q", token)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayRange(t time.Time) Range {
	start := startOfDay(t)

	return Range{
		Start: start,
		End:   start.AddDate(0, 0, 1).Add(-time.Nanosecond),
	}
}

// trailingDays covers the n-day window ending today, today included.
func trailingDays(now time.Time, n int) Range {
	return Range{
		Start: startOfDay(now.AddDate(0, 0, -(n - 1))),
		End:   dayRange(now).End,
	}
}

// weekRange starts on Monday.
func weekRange(t time.Time) Range {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	start := startOfDay(t.AddDate(0, 0, -(weekday - 1)))

	return Range{
		Start: start,
		End:   start.AddDate(0, 0, 7).Add(-time.Nanosecond),
	}
}

func monthRange(t time.Time) Range {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())

	return Range{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

func startOfQuarter(t time.Time) time.Time {
	quarterMonth := time.Month(((int(t.Month())-1)/3)*3 + 1)

	return time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, t.Location())
}

func quarterRange(t time.Time) Range {
	start := startOfQuarter(t)

	return Range{
		Start: start,
		End:   start.AddDate(0, 3, 0).Add(-time.Nanosecond),
	}
}

func yearRange(t time.Time) Range {
	start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())

	return Range{
		Start: start,
		End:   start.AddDate(1, 0, 0).Add(-time.Nanosecond),
	}
}
