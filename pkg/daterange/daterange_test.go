package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2024-03-15 is a Friday in Q1.
var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOf(t time.Time) time.Time {
	return t.Add(-time.Nanosecond)
}

func TestIsRelativeToken(t *testing.T) {
	assert.True(t, IsRelativeToken("@today"))
	assert.True(t, IsRelativeToken("@last7Days"))
	assert.False(t, IsRelativeToken("today"))
	assert.False(t, IsRelativeToken("@"))
	assert.False(t, IsRelativeToken(""))
	assert.False(t, IsRelativeToken("2024-03-15"))
}

func TestResolveDayTokens(t *testing.T) {
	r := NewResolver(fixedClock)

	rng, err := r.Resolve("@today")
	assert.NoError(t, err)
	assert.Equal(t, day(2024, time.March, 15), rng.Start)
	assert.Equal(t, endOf(day(2024, time.March, 16)), rng.End)

	rng, err = r.Resolve("@yesterday")
	assert.NoError(t, err)
	assert.Equal(t, day(2024, time.March, 14), rng.Start)
	assert.Equal(t, endOf(day(2024, time.March, 15)), rng.End)
}

func TestResolveTrailingWindows(t *testing.T) {
	r := NewResolver(fixedClock)

	tests := []struct {
		token string
		start time.Time
	}{
		// the current day counts as one of the N
		{"@last7Days", day(2024, time.March, 9)},
		{"@last30Days", day(2024, time.February, 15)},
		{"@last90Days", day(2023, time.December, 17)},
	}

	for _, tt := range tests {
		rng, err := r.Resolve(tt.token)
		assert.NoError(t, err)
		assert.Equal(t, tt.start, rng.Start, tt.token)
		assert.Equal(t, endOf(day(2024, time.March, 16)), rng.End, tt.token)
	}
}

func TestResolveWeekTokens(t *testing.T) {
	r := NewResolver(fixedClock)

	// weeks start on Monday
	rng, err := r.Resolve("@thisWeek")
	assert.NoError(t, err)
	assert.Equal(t, day(2024, time.March, 11), rng.Start)
	assert.Equal(t, endOf(day(2024, time.March, 18)), rng.End)

	rng, err = r.Resolve("@lastWeek")
	assert.NoError(t, err)
	assert.Equal(t, day(2024, time.March, 4), rng.Start)
	assert.Equal(t, endOf(day(2024, time.March, 11)), rng.End)
}

func TestResolveWeekOnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday
	sunday := time.Date(2024, time.March, 17, 23, 0, 0, 0, time.UTC)
	r := NewResolver(func() time.Time { return sunday })

	rng, err := r.Resolve("@thisWeek")
	assert.NoError(t, err)
	assert.Equal(t, day(2024, time.March, 11), rng.Start)
}

func TestResolveMonthTokens(t *testing.T) {
	r := NewResolver(fixedClock)

	rng, err := r.Resolve("@thisMonth")
	assert.NoError(t, err)
	assert.Equal(t, day(2024, time.March, 1), rng.Start)
	assert.Equal(t, endOf(day(2024, time.April, 1)), rng.End)

	rng, err = r.Resolve("@lastMonth")
	assert.NoError(t, err)
	assert.Equal(t, day(2024, time.February, 1), rng.Start)
	assert.Equal(t, endOf(day(2024, time.March, 1)), rng.End)
}

func TestResolveQuarterTokens(t *testing.T) {
	r := NewResolver(fixedClock)

	rng, err := r.Resolve("@thisQuarter")
	assert.NoError(t, err)
	assert.Equal(t, day(2024, time.January, 1), rng.Start)
	assert.Equal(t, endOf(day(2024, time.April, 1)), rng.End)

	rng, err = r.Resolve("@lastQuarter")
	assert.NoError(t, err)
	assert.Equal(t, day(2023, time.October, 1), rng.Start)
	assert.Equal(t, endOf(day(2024, time.January, 1)), rng.End)
}

func TestResolveYearTokens(t *testing.T) {
	r := NewResolver(fixedClock)

	rng, err := r.Resolve("@thisYear")
	assert.NoError(t, err)
	assert.Equal(t, day(2024, time.January, 1), rng.Start)
	assert.Equal(t, endOf(day(2025, time.January, 1)), rng.End)

	rng, err = r.Resolve("@lastYear")
	assert.NoError(t, err)
	assert.Equal(t, day(2023, time.January, 1), rng.Start)
	assert.Equal(t, endOf(day(2024, time.January, 1)), rng.End)
}

func TestResolveUnknownToken(t *testing.T) {
	r := NewResolver(fixedClock)

	_, err := r.Resolve("@someday")
	assert.Error(t, err)
}

func TestNewResolverNilClock(t *testing.T) {
	r := NewResolver(nil)

	rng, err := r.Resolve("@today")
	assert.NoError(t, err)
	assert.False(t, rng.Start.IsZero())
	assert.True(t, rng.End.After(rng.Start))
}
