package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_Seed(t *testing.T) {
	c := NewCatalog()

	expectedExercises := map[Weekday]int{
		Monday:    6,
		Tuesday:   6,
		Wednesday: 5,
		Thursday:  6,
		Friday:    3,
		Saturday:  2,
		Sunday:    2,
	}
	for i, wd := range Weekdays {
		assert.Equal(t, 3, c.MealCount(wd), wd.String())
		assert.Equal(t, expectedExercises[wd], c.ExerciseCount(wd), wd.String())

		w, ok := c.WorkoutForWeekday(wd)
		require.True(t, ok, wd.String())
		assert.Equal(t, i+1, w.ID)
		assert.Equal(t, i+1, w.DayNumber)
		assert.Equal(t, wd, w.Day)
	}
}

func TestCatalog_MealsForWeekday(t *testing.T) {
	c := NewCatalog()

	meals := c.MealsForWeekday(Monday)
	require.Len(t, meals, 3)
	assert.Equal(t, 1, meals[0].ID)
	assert.Equal(t, "12:00 PM", meals[0].Time)
	assert.Equal(t, "1:00 PM", meals[1].Time)
	assert.Equal(t, "7:00 PM", meals[2].Time)
	assert.Equal(t, 1100, TotalCalories(meals))

	friday := c.MealsForWeekday(Friday)
	require.Len(t, friday, 3)
	assert.Equal(t, 13, friday[0].ID)
	assert.Equal(t, 0, friday[1].Calories)

	unknown := c.MealsForWeekday("funday")
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
	assert.Equal(t, 0, c.MealCount("funday"))
	assert.Equal(t, 0, c.ExerciseCount("funday"))
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := NewCatalog()

	meals := c.MealsForWeekday(Tuesday)
	meals[0].Description = "changed"
	assert.NotEqual(t, "changed", c.MealsForWeekday(Tuesday)[0].Description)

	workout, ok := c.WorkoutWithExercises(Tuesday)
	require.True(t, ok)
	workout.Exercises[0].Name = "changed"
	assert.Equal(t, "Warm-up Cardio", c.ExercisesForWorkout(workout.ID)[0].Name)
}

func TestCatalog_WorkoutWithExercises(t *testing.T) {
	c := NewCatalog()

	workout, ok := c.WorkoutWithExercises(Wednesday)
	require.True(t, ok)
	assert.Equal(t, "Glutes & Hamstrings", workout.Type)
	require.Len(t, workout.Exercises, 5)
	assert.Equal(t, 13, workout.Exercises[0].ID)
	assert.Equal(t, "Deadlifts", workout.Exercises[1].Name)
	for _, ex := range workout.Exercises {
		assert.Equal(t, workout.ID, ex.WorkoutID)
	}

	_, ok = c.WorkoutWithExercises("")
	assert.False(t, ok)
	assert.Empty(t, c.ExercisesForWorkout(999))
}

func TestCatalog_DayPlan(t *testing.T) {
	c := NewCatalog()
	cal := NewCalendar(DefaultEpoch)

	dp := c.DayPlan(cal, 12)
	assert.Equal(t, 12, dp.DayNumber)
	assert.Equal(t, 2, dp.WeekNumber)
	assert.Equal(t, Friday, dp.Weekday)
	assert.Equal(t, "2023-04-11", dp.Date)
	assert.Len(t, dp.Meals, 3)
	assert.Equal(t, 1120, dp.TotalCalories)
	require.NotNil(t, dp.Workout)
	assert.Len(t, dp.Workout.Exercises, 3)
}

func TestParseWeekday(t *testing.T) {
	wd, ok := ParseWeekday(" Monday ")
	assert.True(t, ok)
	assert.Equal(t, Monday, wd)

	wd, ok = ParseWeekday("SUNDAY")
	assert.True(t, ok)
	assert.True(t, wd.IsWeekend())

	_, ok = ParseWeekday("someday")
	assert.False(t, ok)
	assert.False(t, Friday.IsWeekend())
}
