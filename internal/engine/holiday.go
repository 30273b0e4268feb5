package engine

import (
	"sort"
	"sync"
	"time"
)

// RollConvention selects how a non-business due date is moved.
type RollConvention string

const (
	RollNext     RollConvention = "NEXT_BUSINESS_DAY"
	RollPrevious RollConvention = "PREVIOUS_BUSINESS_DAY"
)

// Holiday is one non-business date.
type Holiday struct {
	Date time.Time
	Name string
}

// HolidayCalendar is the set of non-business days of one jurisdiction. Entries are
// append-only; a year with no entries falls back to weekend-only rules.
type HolidayCalendar struct {
	mu       sync.RWMutex
	weekend  map[time.Weekday]bool
	holidays map[int]map[time.Time]string
}

// NewHolidayCalendar creates a calendar. With no weekend days given it uses Saturday
// and Sunday. A weekend covering all seven days leaves no business day to roll to
// and is rejected.
func NewHolidayCalendar(weekend ...time.Weekday) (*HolidayCalendar, error) {
	if len(weekend) == 0 {
		weekend = []time.Weekday{time.Saturday, time.Sunday}
	}
	c := newHolidayCalendar(weekend)
	if len(c.weekend) >= 7 {
		return nil, conflict("holiday calendar", "every weekday is a weekend day")
	}
	return c, nil
}

func newHolidayCalendar(weekend []time.Weekday) *HolidayCalendar {
	c := &HolidayCalendar{
		weekend:  make(map[time.Weekday]bool, len(weekend)),
		holidays: make(map[int]map[time.Time]string),
	}
	for _, d := range weekend {
		c.weekend[d] = true
	}
	return c
}

// AddHoliday marks date as non-business. Re-adding an existing date keeps the
// first name.
func (c *HolidayCalendar) AddHoliday(date time.Time, name string) {
	d := Date(date)
	c.mu.Lock()
	defer c.mu.Unlock()

	year, ok := c.holidays[d.Year()]
	if !ok {
		year = make(map[time.Time]string)
		c.holidays[d.Year()] = year
	}
	if _, exists := year[d]; !exists {
		year[d] = name
	}
}

// IsBusinessDay reports whether date is neither a weekend day nor a holiday.
func (c *HolidayCalendar) IsBusinessDay(date time.Time) bool {
	d := Date(date)
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.weekend[d.Weekday()] {
		return false
	}
	_, holiday := c.holidays[d.Year()][d]
	return !holiday
}

// HasYear reports whether any holidays are configured for year.
func (c *HolidayCalendar) HasYear(year int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.holidays[year]) > 0
}

// Holidays lists the configured holidays of year in date order.
func (c *HolidayCalendar) Holidays(year int) []Holiday {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Holiday, 0, len(c.holidays[year]))
	for d, name := range c.holidays[year] {
		out = append(out, Holiday{Date: d, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// NextBusinessDay returns date itself if it is a business day, else the first
// business day after it.
func (c *HolidayCalendar) NextBusinessDay(date time.Time) time.Time {
	return c.step(Date(date), 1)
}

// PreviousBusinessDay returns date itself if it is a business day, else the last
// business day before it.
func (c *HolidayCalendar) PreviousBusinessDay(date time.Time) time.Time {
	return c.step(Date(date), -1)
}

// Roll applies convention to date.
func (c *HolidayCalendar) Roll(date time.Time, convention RollConvention) time.Time {
	if convention == RollPrevious {
		return c.PreviousBusinessDay(date)
	}
	return c.NextBusinessDay(date)
}

// step terminates because the constructor leaves at least one weekday free and
// holidays are finite.
func (c *HolidayCalendar) step(d time.Time, dir int) time.Time {
	for !c.IsBusinessDay(d) {
		d = d.AddDate(0, 0, dir)
	}
	return d
}

// CalendarSet maps jurisdictions to calendars. Unknown jurisdictions get a
// weekend-only calendar.
type CalendarSet struct {
	mu        sync.RWMutex
	calendars map[string]*HolidayCalendar
}

// NewCalendarSet creates an empty set.
func NewCalendarSet() *CalendarSet {
	return &CalendarSet{calendars: make(map[string]*HolidayCalendar)}
}

// Set registers cal for jurisdiction.
func (s *CalendarSet) Set(jurisdiction string, cal *HolidayCalendar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendars[jurisdiction] = cal
}

// For returns the calendar of jurisdiction, creating a weekend-only one if missing.
func (s *CalendarSet) For(jurisdiction string) *HolidayCalendar {
	s.mu.RLock()
	cal, ok := s.calendars[jurisdiction]
	s.mu.RUnlock()
	if ok {
		return cal
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cal, ok = s.calendars[jurisdiction]; !ok {
		cal = newHolidayCalendar([]time.Weekday{time.Saturday, time.Sunday})
		s.calendars[jurisdiction] = cal
	}
	return cal
}
