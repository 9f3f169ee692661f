package progress

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

const emptyIDSet = "[]"

// Progress is the tracked state of one plan day for one user.
// Meal and exercise completions are JSON encoded int arrays, e.g. "[1,3]".
type Progress struct {
	ID                  int       `json:"id"`
	UserID              int       `json:"userId"`
	DayNumber           int       `json:"dayNumber"`
	Date                string    `json:"date"`
	MealCompletions     string    `json:"mealCompletions"`
	WorkoutCompleted    bool      `json:"workoutCompleted"`
	ExerciseCompletions string    `json:"exerciseCompletions"`
	DailyWalkCompleted  bool      `json:"dailyWalkCompleted"`
	Notes               *string   `json:"notes"`
	CreatedAt           time.Time `json:"createdAt"`
}

func newProgress(userID, dayNumber int, date string) Progress {
	notes := ""
	return Progress{
		UserID:              userID,
		DayNumber:           dayNumber,
		Date:                date,
		MealCompletions:     emptyIDSet,
		ExerciseCompletions: emptyIDSet,
		Notes:               &notes,
	}
}

// clone returns a copy that shares no memory with p.
func (p *Progress) clone() *Progress {
	c := *p
	if p.Notes != nil {
		notes := *p.Notes
		c.Notes = &notes
	}
	return &c
}

func (p *Progress) CompletedMeals() (IDSet, error) {
	return DecodeIDSet(p.MealCompletions)
}

func (p *Progress) CompletedExercises() (IDSet, error) {
	return DecodeIDSet(p.ExerciseCompletions)
}

// Patch holds the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	Date                *string
	MealCompletions     *string
	WorkoutCompleted    *bool
	ExerciseCompletions *string
	DailyWalkCompleted  *bool
	Notes               *string
	// ClearNotes sets notes to null, Notes is ignored when set.
	ClearNotes bool
}

func (p Patch) IsEmpty() bool {
	return p.Date == nil &&
		p.MealCompletions == nil &&
		p.WorkoutCompleted == nil &&
		p.ExerciseCompletions == nil &&
		p.DailyWalkCompleted == nil &&
		p.Notes == nil &&
		!p.ClearNotes
}

func (p Patch) applyTo(pr *Progress) {
	if p.Date != nil {
		pr.Date = *p.Date
	}
	if p.MealCompletions != nil {
		pr.MealCompletions = *p.MealCompletions
	}
	if p.WorkoutCompleted != nil {
		pr.WorkoutCompleted = *p.WorkoutCompleted
	}
	if p.ExerciseCompletions != nil {
		pr.ExerciseCompletions = *p.ExerciseCompletions
	}
	if p.DailyWalkCompleted != nil {
		pr.DailyWalkCompleted = *p.DailyWalkCompleted
	}
	switch {
	case p.ClearNotes:
		pr.Notes = nil
	case p.Notes != nil:
		notes := *p.Notes
		pr.Notes = &notes
	}
}

// IDSet is an ordered set of meal or exercise ids.
type IDSet []int

// DecodeIDSet parses a JSON encoded int array. An empty string is an empty set.
func DecodeIDSet(encoded string) (IDSet, error) {
	if encoded == "" {
		return IDSet{}, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(encoded), &ids); err != nil {
		return nil, fmt.Errorf("decode id set [%s]: %w", encoded, err)
	}
	if ids == nil {
		return IDSet{}, nil
	}
	return ids, nil
}

func (s IDSet) Encode() string {
	if len(s) == 0 {
		return emptyIDSet
	}
	encoded, err := json.Marshal([]int(s))
	if err != nil {
		// unreachable for an int slice
		return emptyIDSet
	}
	return string(encoded)
}

func (s IDSet) Contains(id int) bool {
	return slices.Contains(s, id)
}

// Toggle removes id if present, otherwise appends it.
// The receiver is left unmodified.
func (s IDSet) Toggle(id int) IDSet {
	if s.Contains(id) {
		return slices.DeleteFunc(slices.Clone(s), func(v int) bool {
			return v == id
		})
	}
	return append(slices.Clone(s), id)
}
