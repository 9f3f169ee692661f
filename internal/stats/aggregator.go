package stats

import (
	"context"
	"fmt"

	"github.com/2beens/mealplan/internal/plan"
	"github.com/2beens/mealplan/internal/progress"
	"github.com/2beens/mealplan/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type planCounter interface {
	MealCount(wd plan.Weekday) int
	ExerciseCount(wd plan.Weekday) int
}

type progressResolver interface {
	GetOrCreate(ctx context.Context, userID, dayNumber int) (*progress.Progress, error)
}

type DayStats struct {
	DayNumber              int          `json:"dayNumber"`
	WeekNumber             int          `json:"weekNumber"`
	Weekday                plan.Weekday `json:"day"`
	MealCompletionRate     float64      `json:"mealCompletionRate"`
	ExerciseCompletionRate float64      `json:"exerciseCompletionRate"`
	WorkoutCompleted       bool         `json:"workoutCompleted"`
	DailyWalkCompleted     bool         `json:"dailyWalkCompleted"`
}

type WeekStats struct {
	WeekNumber              int        `json:"weekNumber"`
	DateRange               string     `json:"dateRange"`
	MealCompletionRate      float64    `json:"mealCompletionRate"`
	ExerciseCompletionRate  float64    `json:"exerciseCompletionRate"`
	WorkoutCompletionRate   float64    `json:"workoutCompletionRate"`
	DailyWalkCompletionRate float64    `json:"dailyWalkCompletionRate"`
	Days                    []DayStats `json:"days"`
}

type ProgressStats struct {
	DailyProgress []DayStats  `json:"dailyProgress"`
	WeeklyStats   []WeekStats `json:"weeklyStats"`
}

// Aggregator reduces progress records and plan counts into completion
// rates. Rates are fractions in [0,1] and are never rounded.
type Aggregator struct {
	counter  planCounter
	progress progressResolver
	calendar *plan.Calendar
}

func NewAggregator(counter planCounter, progress progressResolver, calendar *plan.Calendar) *Aggregator {
	return &Aggregator{
		counter:  counter,
		progress: progress,
		calendar: calendar,
	}
}

// Day resolves (creating if needed) the day's progress and rates it.
func (a *Aggregator) Day(ctx context.Context, userID, dayNumber int) (DayStats, error) {
	p, err := a.progress.GetOrCreate(ctx, userID, dayNumber)
	if err != nil {
		return DayStats{}, fmt.Errorf("resolve progress for day %d: %w", dayNumber, err)
	}
	return a.rateDay(p)
}

func (a *Aggregator) rateDay(p *progress.Progress) (DayStats, error) {
	wd := a.calendar.Weekday(p.DayNumber)

	meals, err := p.CompletedMeals()
	if err != nil {
		return DayStats{}, fmt.Errorf("day %d meals: %w", p.DayNumber, err)
	}
	exercises, err := p.CompletedExercises()
	if err != nil {
		return DayStats{}, fmt.Errorf("day %d exercises: %w", p.DayNumber, err)
	}

	return DayStats{
		DayNumber:              p.DayNumber,
		WeekNumber:             a.calendar.WeekNumber(p.DayNumber),
		Weekday:                wd,
		MealCompletionRate:     rate(len(meals), a.counter.MealCount(wd)),
		ExerciseCompletionRate: rate(len(exercises), a.counter.ExerciseCount(wd)),
		WorkoutCompleted:       p.WorkoutCompleted,
		DailyWalkCompleted:     p.DailyWalkCompleted,
	}, nil
}

// Week rates the 7 days of the week. Week 6 runs past the plan end to day
// 42, the same window as the weekly summary.
func (a *Aggregator) Week(ctx context.Context, userID, weekNumber int) (_ WeekStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.aggregator.week")
	span.SetAttributes(attribute.Int("stats.week", weekNumber))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	first, last := a.calendar.SummaryDayNumbers(weekNumber)
	days := make([]DayStats, 0, plan.DaysInWeek)
	for dayNumber := first; dayNumber <= last; dayNumber++ {
		ds, err := a.Day(ctx, userID, dayNumber)
		if err != nil {
			return WeekStats{}, err
		}
		days = append(days, ds)
	}

	return a.reduceWeek(a.calendar.WeekNumber(first), days), nil
}

// Overall rates all 40 days and the 6 weeks.
func (a *Aggregator) Overall(ctx context.Context, userID int) (_ ProgressStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.aggregator.overall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// the weekly windows reach past the last plan day
	_, lastSummaryDay := a.calendar.SummaryDayNumbers(plan.TotalWeeks)
	daily := make([]DayStats, 0, lastSummaryDay)
	for dayNumber := 1; dayNumber <= lastSummaryDay; dayNumber++ {
		ds, err := a.Day(ctx, userID, dayNumber)
		if err != nil {
			return ProgressStats{}, err
		}
		daily = append(daily, ds)
	}

	weekly := make([]WeekStats, 0, plan.TotalWeeks)
	for weekNumber := 1; weekNumber <= plan.TotalWeeks; weekNumber++ {
		first, last := a.calendar.SummaryDayNumbers(weekNumber)
		weekly = append(weekly, a.reduceWeek(weekNumber, daily[first-1:last]))
	}

	return ProgressStats{
		DailyProgress: daily[:plan.TotalDays],
		WeeklyStats:   weekly,
	}, nil
}

func (a *Aggregator) reduceWeek(weekNumber int, days []DayStats) WeekStats {
	ws := WeekStats{
		WeekNumber: weekNumber,
		DateRange:  a.calendar.WeekDateRange(weekNumber),
		Days:       days,
	}
	if len(days) == 0 {
		return ws
	}

	var mealSum, exerciseSum float64
	workoutDays, workoutsDone, walks := 0, 0, 0
	for _, d := range days {
		mealSum += d.MealCompletionRate
		exerciseSum += d.ExerciseCompletionRate

		// weekend days only count as workout days when trained anyway
		if !d.Weekday.IsWeekend() || d.WorkoutCompleted {
			workoutDays++
		}
		if d.WorkoutCompleted {
			workoutsDone++
		}
		if d.DailyWalkCompleted {
			walks++
		}
	}

	ws.MealCompletionRate = mealSum / float64(len(days))
	ws.ExerciseCompletionRate = exerciseSum / float64(len(days))
	ws.WorkoutCompletionRate = rate(workoutsDone, workoutDays)
	ws.DailyWalkCompletionRate = float64(walks) / plan.DaysInWeek
	return ws
}

// rate is done/total capped at 1, and 0 when nothing is planned.
func rate(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return min(float64(done)/float64(total), 1)
}
