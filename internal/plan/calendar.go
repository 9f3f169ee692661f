package plan

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	TotalDays  = 40
	TotalWeeks = 6
	DaysInWeek = 7

	dateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

// DefaultEpoch is the plan's day 1.
var DefaultEpoch = time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC)

// DayMapping ties an absolute plan day to its weekday key and calendar date.
type DayMapping struct {
	DayNumber  int       `json:"dayNumber"`
	WeekNumber int       `json:"weekNumber"`
	Weekday    Weekday   `json:"day"`
	Date       time.Time `json:"date"`
}

// MarshalJSON renders the date as YYYY-MM-DD.
func (m DayMapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DayNumber  int     `json:"dayNumber"`
		WeekNumber int     `json:"weekNumber"`
		Weekday    Weekday `json:"day"`
		Date       string  `json:"date"`
	}{
		DayNumber:  m.DayNumber,
		WeekNumber: m.WeekNumber,
		Weekday:    m.Weekday,
		Date:       ISODate(m.Date),
	})
}

// Calendar maps plan day numbers to weekdays, dates and weeks.
// Day 1 is always a monday, whatever weekday the epoch falls on.
type Calendar struct {
	epoch time.Time
}

func NewCalendar(epoch time.Time) *Calendar {
	epoch = epoch.UTC()
	return &Calendar{
		epoch: time.Date(epoch.Year(), epoch.Month(), epoch.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// ParseEpoch parses a YYYY-MM-DD plan start date.
func ParseEpoch(s string) (time.Time, error) {
	epoch, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse plan start date [%s]: %w", s, err)
	}
	return epoch, nil
}

func (c *Calendar) Epoch() time.Time {
	return c.epoch
}

// LastDay is the date of day 40.
func (c *Calendar) LastDay() time.Time {
	return c.Date(TotalDays)
}

func (c *Calendar) Weekday(dayNumber int) Weekday {
	idx := (dayNumber - 1) % DaysInWeek
	if idx < 0 {
		idx += DaysInWeek
	}
	return Weekdays[idx]
}

func (c *Calendar) Date(dayNumber int) time.Time {
	return c.epoch.AddDate(0, 0, dayNumber-1)
}

func (c *Calendar) WeekNumber(dayNumber int) int {
	// ceil(dayNumber / 7) for positive day numbers
	week := (dayNumber + DaysInWeek - 1) / DaysInWeek
	return clamp(week, 1, TotalWeeks)
}

func (c *Calendar) CurrentDayNumber(now time.Time) int {
	if now.Before(c.epoch) {
		return 1
	}
	if now.After(c.LastDay()) {
		return TotalDays
	}
	daysSinceStart := int(now.Sub(c.epoch)/day) + 1
	return clamp(daysSinceStart, 1, TotalDays)
}

func (c *Calendar) CurrentWeekNumber(now time.Time) int {
	if now.Before(c.epoch) {
		return 1
	}
	if now.After(c.LastDay()) {
		return TotalWeeks
	}
	return c.WeekNumber(c.CurrentDayNumber(now))
}

func (c *Calendar) Mapping(dayNumber int) DayMapping {
	return DayMapping{
		DayNumber:  dayNumber,
		WeekNumber: c.WeekNumber(dayNumber),
		Weekday:    c.Weekday(dayNumber),
		Date:       c.Date(dayNumber),
	}
}

// WeekDayNumbers returns the first and the last plan day of the week.
// The last week is cut at day 40.
func (c *Calendar) WeekDayNumbers(weekNumber int) (first, last int) {
	weekNumber = clamp(weekNumber, 1, TotalWeeks)
	first = (weekNumber-1)*DaysInWeek + 1
	last = min(first+DaysInWeek-1, TotalDays)
	return first, last
}

// SummaryDayNumbers returns the full 7-day window of the week. Unlike
// WeekDayNumbers the last week is not cut, it runs to day 42.
func (c *Calendar) SummaryDayNumbers(weekNumber int) (first, last int) {
	weekNumber = clamp(weekNumber, 1, TotalWeeks)
	first = (weekNumber-1)*DaysInWeek + 1
	return first, first + DaysInWeek - 1
}

func (c *Calendar) WeekDays(weekNumber int) []DayMapping {
	first, last := c.WeekDayNumbers(weekNumber)
	days := make([]DayMapping, 0, DaysInWeek)
	for dayNumber := first; dayNumber <= last; dayNumber++ {
		days = append(days, c.Mapping(dayNumber))
	}
	return days
}

// WeekDateRange formats the week span, e.g. "March 31 - April 6, 2023".
func (c *Calendar) WeekDateRange(weekNumber int) string {
	first, last := c.WeekDayNumbers(weekNumber)
	return fmt.Sprintf("%s - %s",
		c.Date(first).Format("January 2"),
		c.Date(last).Format("January 2, 2006"),
	)
}

// ISODate formats t as YYYY-MM-DD in UTC.
func ISODate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
