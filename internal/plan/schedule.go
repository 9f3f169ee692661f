package plan

// Schedule answers which catalog entries fall on a plan day.
type Schedule struct {
	catalog  *Catalog
	calendar *Calendar
}

func NewSchedule(catalog *Catalog, calendar *Calendar) *Schedule {
	return &Schedule{
		catalog:  catalog,
		calendar: calendar,
	}
}

func (s *Schedule) MealScheduled(dayNumber, mealID int) bool {
	for _, m := range s.catalog.meals[s.calendar.Weekday(dayNumber)] {
		if m.ID == mealID {
			return true
		}
	}
	return false
}

// ExerciseScheduled reports whether the exercise is part of the day's
// workout. Days without a workout have no exercises.
func (s *Schedule) ExerciseScheduled(dayNumber, exerciseID int) bool {
	w, ok := s.catalog.WorkoutForWeekday(s.calendar.Weekday(dayNumber))
	if !ok {
		return false
	}
	for _, ex := range s.catalog.exercises[w.ID] {
		if ex.ID == exerciseID {
			return true
		}
	}
	return false
}
