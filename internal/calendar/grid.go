package calendar

import "time"

// Event is the minimal view of a dated calendar entry the grid needs.
type Event struct {
	ID    uint      `json:"id"`
	Title string    `json:"title"`
	Type  string    `json:"type"`
	Color string    `json:"color"`
	Start time.Time `json:"startTime"`
}

// Cell is one rendered unit of a month grid. Placeholder cells pad the first
// week so that day 1 falls under its weekday column.
type Cell struct {
	Placeholder bool    `json:"placeholder"`
	Day         int     `json:"day,omitempty"`
	IsToday     bool    `json:"isToday"`
	IsSelected  bool    `json:"isSelected"`
	Events      []Event `json:"events,omitempty"`
}

// Builder lays out month grids for one weekday convention.
type Builder struct {
	WeekStart time.Weekday
	Location  *time.Location
}

var (
	// MonthView is the full calendar page layout, Sunday first.
	MonthView = Builder{WeekStart: time.Sunday}
	// DashboardView is the dashboard widget layout, Monday first.
	DashboardView = Builder{WeekStart: time.Monday}
)

func (b Builder) In(loc *time.Location) Builder {
	b.Location = loc
	return b
}

func (b Builder) location() *time.Location {
	if b.Location == nil {
		return time.Local
	}
	return b.Location
}

// Build returns the cells for the given month. Events are bucketed by the
// calendar date of their start time in the builder's location; time of day is
// ignored. A zero selected or today matches no cell.
func (b Builder) Build(year int, month time.Month, events []Event, selected, today time.Time) []Cell {
	loc := b.location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	// normalise overflowing months such as 13
	year, month = first.Year(), first.Month()

	days := DaysIn(year, month)
	lead := LeadingBlanks(first.Weekday(), b.WeekStart)

	buckets := make(map[int][]Event)
	for _, e := range events {
		y, m, d := e.Start.In(loc).Date()
		if y == year && m == month {
			buckets[d] = append(buckets[d], e)
		}
	}

	cells := make([]Cell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{Placeholder: true})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{
			Day:        day,
			IsToday:    sameDay(today, loc, year, month, day),
			IsSelected: sameDay(selected, loc, year, month, day),
			Events:     buckets[day],
		})
	}
	return cells
}

// DaysIn returns the number of days in the month, leap years included.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LeadingBlanks is how many placeholder cells precede a month whose first day
// is firstDay, for weeks starting on weekStart.
func LeadingBlanks(firstDay, weekStart time.Weekday) int {
	return (int(firstDay) - int(weekStart) + 7) % 7
}

func sameDay(t time.Time, loc *time.Location, year int, month time.Month, day int) bool {
	if t.IsZero() {
		return false
	}
	y, m, d := t.In(loc).Date()
	return y == year && m == month && d == day
}
