package plan

import "strings"

// Weekday is the catalog lookup key, e.g. "monday".
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays is ordered with monday at index 0.
var Weekdays = []Weekday{
	Monday,
	Tuesday,
	Wednesday,
	Thursday,
	Friday,
	Saturday,
	Sunday,
}

func ParseWeekday(s string) (Weekday, bool) {
	wd := Weekday(strings.ToLower(strings.TrimSpace(s)))
	return wd, wd.IsValid()
}

func (wd Weekday) String() string {
	return string(wd)
}

func (wd Weekday) IsValid() bool {
	switch wd {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	default:
		return false
	}
}

// IsWeekend reports rest days (saturday and sunday).
func (wd Weekday) IsWeekend() bool {
	return wd == Saturday || wd == Sunday
}
