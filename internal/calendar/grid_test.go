package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func split(cells []Cell) (placeholders, days int) {
	for _, c := range cells {
		if c.Placeholder {
			placeholders++
			continue
		}
		days++
	}
	return
}

func TestBuildJanuary2024(t *testing.T) {
	monday := DashboardView.In(time.UTC).Build(2024, time.January, nil, time.Time{}, time.Time{})
	lead, days := split(monday)
	assert.Equal(t, 0, lead)
	assert.Equal(t, 31, days)
	assert.Equal(t, 1, monday[0].Day)

	sunday := MonthView.In(time.UTC).Build(2024, time.January, nil, time.Time{}, time.Time{})
	lead, days = split(sunday)
	assert.Equal(t, 1, lead)
	assert.Equal(t, 31, days)
}

func TestBuildFebruaryLeapYears(t *testing.T) {
	b := DashboardView.In(time.UTC)
	cases := map[int]int{2023: 28, 2024: 29, 2000: 29, 1900: 28}
	for year, want := range cases {
		_, days := split(b.Build(year, time.February, nil, time.Time{}, time.Time{}))
		assert.Equal(t, want, days, "year %d", year)
	}
}

func TestDaysInEveryMonth(t *testing.T) {
	want := []int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for i, n := range want {
		assert.Equal(t, n, DaysIn(2025, time.Month(i+1)))
	}
}

func TestLeadingBlanks(t *testing.T) {
	// September 2024 starts on a Sunday
	assert.Equal(t, 0, LeadingBlanks(time.Sunday, time.Sunday))
	assert.Equal(t, 6, LeadingBlanks(time.Sunday, time.Monday))
	assert.Equal(t, 5, LeadingBlanks(time.Saturday, time.Monday))
	assert.Equal(t, 6, LeadingBlanks(time.Saturday, time.Sunday))

	lead, _ := split(DashboardView.In(time.UTC).Build(2024, time.September, nil, time.Time{}, time.Time{}))
	assert.Equal(t, 6, lead)
}

func TestEventsBucketedByCalendarDay(t *testing.T) {
	events := []Event{
		{ID: 1, Title: "morning", Start: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "late", Start: time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)},
		{ID: 3, Title: "other month", Start: time.Date(2024, 4, 15, 9, 0, 0, 0, time.UTC)},
		{ID: 4, Title: "other year", Start: time.Date(2023, 3, 15, 9, 0, 0, 0, time.UTC)},
		{ID: 5, Title: "first", Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	cells := MonthView.In(time.UTC).Build(2024, time.March, events, time.Time{}, time.Time{})

	seen := map[uint]int{}
	for _, c := range cells {
		for _, e := range c.Events {
			seen[e.ID]++
			switch e.ID {
			case 1, 2:
				assert.Equal(t, 15, c.Day)
			case 5:
				assert.Equal(t, 1, c.Day)
			}
		}
	}
	assert.Equal(t, map[uint]int{1: 1, 2: 1, 5: 1}, seen)
}

func TestEventsUseBuilderLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 20:00 UTC on the 14th is the 15th in Tokyo
	e := Event{ID: 1, Start: time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)}

	cells := MonthView.In(tokyo).Build(2024, time.March, []Event{e}, time.Time{}, time.Time{})
	for _, c := range cells {
		if c.Day == 15 {
			require.Len(t, c.Events, 1)
		} else {
			assert.Empty(t, c.Events)
		}
	}
}

func TestTodayAndSelectedFlags(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	selected := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	cells := DashboardView.In(time.UTC).Build(2024, time.March, nil, selected, today)

	var todays, selecteds []int
	for _, c := range cells {
		if c.IsToday {
			todays = append(todays, c.Day)
		}
		if c.IsSelected {
			selecteds = append(selecteds, c.Day)
		}
	}
	assert.Equal(t, []int{10}, todays)
	assert.Equal(t, []int{20}, selecteds)

	// same day-of-month in another month must not be flagged
	cells = DashboardView.In(time.UTC).Build(2024, time.April, nil, selected, today)
	for _, c := range cells {
		assert.False(t, c.IsToday)
		assert.False(t, c.IsSelected)
	}
}

func TestBuildNormalisesMonthOverflow(t *testing.T) {
	_, days := split(MonthView.In(time.UTC).Build(2023, 14, nil, time.Time{}, time.Time{}))
	assert.Equal(t, 29, days)
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#fca5a5", ColorFor(TypeExam))
	assert.Equal(t, "#fcd34d", ColorFor(TypeDeadline))
	assert.Equal(t, "#bfdbfe", ColorFor(TypeMeeting))
	assert.Equal(t, "#bfdbfe", ColorFor(TypeEvent))
}
