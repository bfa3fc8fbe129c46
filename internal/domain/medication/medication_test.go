package medication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDayNormalizesToUTCMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	assert.NoError(t, err)

	stamp := time.Date(2026, 3, 12, 2, 30, 0, 0, loc) // 2026-03-11 21:00 UTC
	got := Day(stamp)

	assert.Equal(t, date("2026-03-11"), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestDeriveEndDate(t *testing.T) {
	start := date("2026-03-10")

	assert.Equal(t, date("2026-03-15"), DeriveEndDate(start, 5))
	assert.Equal(t, start, DeriveEndDate(start, 0), "zero duration collapses to a single day")
	assert.Equal(t, start, DeriveEndDate(start, -3))
}

func TestActiveOn(t *testing.T) {
	start := date("2026-03-10")
	end := date("2026-03-15")
	m := &Medication{DurationDays: 5, StartDate: &start, EndDate: &end}

	assert.False(t, m.ActiveOn(date("2026-03-09")), "day before start")
	assert.True(t, m.ActiveOn(date("2026-03-10")), "start day")
	assert.True(t, m.ActiveOn(date("2026-03-15")), "end day is inclusive")
	assert.False(t, m.ActiveOn(date("2026-03-16")), "day after end")
}

func TestActiveOnOpenEnded(t *testing.T) {
	start := date("2026-03-10")
	m := &Medication{StartDate: &start}

	assert.True(t, m.ActiveOn(date("2030-01-01")), "no end date means always due after start")
}

func TestActiveOnWithoutStart(t *testing.T) {
	m := &Medication{DurationDays: 5}
	assert.False(t, m.ActiveOn(date("2026-03-12")))
}

func TestDayNumberOn(t *testing.T) {
	start := date("2026-03-10")
	m := &Medication{DurationDays: 5, StartDate: &start}

	assert.Equal(t, 1, m.DayNumberOn(date("2026-03-10")))
	assert.Equal(t, 3, m.DayNumberOn(date("2026-03-12")))
	assert.Equal(t, 5, m.DayNumberOn(date("2026-03-14")))
	assert.Equal(t, 0, m.DayNumberOn(date("2026-03-15")), "past the numbered range")
	assert.Equal(t, 0, m.DayNumberOn(date("2026-03-09")), "before the start")
}

func TestDayNumberOnUnusableSchedule(t *testing.T) {
	start := date("2026-03-10")

	noStart := &Medication{DurationDays: 5}
	assert.Equal(t, 0, noStart.DayNumberOn(date("2026-03-12")))

	noDuration := &Medication{StartDate: &start}
	assert.Equal(t, 0, noDuration.DayNumberOn(date("2026-03-12")))
}
