package plan

import "slices"

type Meal struct {
	ID          int     `json:"id"`
	Day         Weekday `json:"day"`
	Time        string  `json:"time"`
	Description string  `json:"description"`
	Calories    int     `json:"calories"`
	DayNumber   int     `json:"dayNumber"`
}

type Workout struct {
	ID        int     `json:"id"`
	Day       Weekday `json:"day"`
	Type      string  `json:"type"`
	DayNumber int     `json:"dayNumber"`
}

type Exercise struct {
	ID            int    `json:"id"`
	WorkoutID     int    `json:"workoutId"`
	Name          string `json:"name"`
	RepsAndWeight string `json:"repsAndWeight"`
}

type WorkoutWithExercises struct {
	Workout
	Exercises []Exercise `json:"exercises"`
}

// DayPlan is everything scheduled for a single plan day.
type DayPlan struct {
	DayNumber     int                   `json:"dayNumber"`
	WeekNumber    int                   `json:"weekNumber"`
	Weekday       Weekday               `json:"day"`
	Date          string                `json:"date"`
	Meals         []Meal                `json:"meals"`
	Workout       *WorkoutWithExercises `json:"workout"`
	TotalCalories int                   `json:"totalCalories"`
}

// Catalog is the read-only plan: meals and a workout per weekday, repeated
// over the whole 40-day cycle. The dayNumber on the entries is the first
// occurrence of the weekday (1-7).
type Catalog struct {
	meals     map[Weekday][]Meal
	workouts  map[Weekday]Workout
	exercises map[int][]Exercise

	nextMealID     int
	nextWorkoutID  int
	nextExerciseID int
}

// NewCatalog returns a catalog seeded with the plan table.
func NewCatalog() *Catalog {
	c := &Catalog{
		meals:          make(map[Weekday][]Meal),
		workouts:       make(map[Weekday]Workout),
		exercises:      make(map[int][]Exercise),
		nextMealID:     1,
		nextWorkoutID:  1,
		nextExerciseID: 1,
	}
	for i, entry := range planTable {
		c.seed(Weekdays[i], i+1, entry)
	}
	return c
}

func (c *Catalog) seed(wd Weekday, dayNumber int, entry weekdayPlan) {
	for _, m := range entry.meals {
		c.meals[wd] = append(c.meals[wd], Meal{
			ID:          c.nextMealID,
			Day:         wd,
			Time:        m.time,
			Description: m.description,
			Calories:    m.calories,
			DayNumber:   dayNumber,
		})
		c.nextMealID++
	}

	workout := Workout{
		ID:        c.nextWorkoutID,
		Day:       wd,
		Type:      entry.workoutType,
		DayNumber: dayNumber,
	}
	c.workouts[wd] = workout
	c.nextWorkoutID++

	for _, ex := range entry.exercises {
		c.exercises[workout.ID] = append(c.exercises[workout.ID], Exercise{
			ID:            c.nextExerciseID,
			WorkoutID:     workout.ID,
			Name:          ex.name,
			RepsAndWeight: ex.repsAndWeight,
		})
		c.nextExerciseID++
	}
}

// MealsForWeekday returns the meals in schedule order. Unknown weekdays
// yield an empty (non-nil) slice.
func (c *Catalog) MealsForWeekday(wd Weekday) []Meal {
	meals := c.meals[wd]
	if meals == nil {
		return []Meal{}
	}
	return slices.Clone(meals)
}

func (c *Catalog) WorkoutForWeekday(wd Weekday) (Workout, bool) {
	w, ok := c.workouts[wd]
	return w, ok
}

func (c *Catalog) ExercisesForWorkout(workoutID int) []Exercise {
	exercises := c.exercises[workoutID]
	if exercises == nil {
		return []Exercise{}
	}
	return slices.Clone(exercises)
}

func (c *Catalog) WorkoutWithExercises(wd Weekday) (WorkoutWithExercises, bool) {
	w, ok := c.WorkoutForWeekday(wd)
	if !ok {
		return WorkoutWithExercises{}, false
	}
	return WorkoutWithExercises{
		Workout:   w,
		Exercises: c.ExercisesForWorkout(w.ID),
	}, true
}

// ExerciseCount is the number of exercises planned for the weekday's workout.
func (c *Catalog) ExerciseCount(wd Weekday) int {
	w, ok := c.workouts[wd]
	if !ok {
		return 0
	}
	return len(c.exercises[w.ID])
}

func (c *Catalog) MealCount(wd Weekday) int {
	return len(c.meals[wd])
}

func (c *Catalog) DayPlan(cal *Calendar, dayNumber int) DayPlan {
	mapping := cal.Mapping(dayNumber)
	meals := c.MealsForWeekday(mapping.Weekday)
	dp := DayPlan{
		DayNumber:     dayNumber,
		WeekNumber:    mapping.WeekNumber,
		Weekday:       mapping.Weekday,
		Date:          ISODate(mapping.Date),
		Meals:         meals,
		TotalCalories: TotalCalories(meals),
	}
	if w, ok := c.WorkoutWithExercises(mapping.Weekday); ok {
		dp.Workout = &w
	}
	return dp
}

func TotalCalories(meals []Meal) int {
	total := 0
	for _, m := range meals {
		total += m.Calories
	}
	return total
}
