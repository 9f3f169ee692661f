package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/mealplan/internal/plan"
	"github.com/2beens/mealplan/internal/telemetry/metrics"
	"github.com/2beens/mealplan/internal/telemetry/tracing"
	"github.com/2beens/mealplan/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type daySchedule interface {
	MealScheduled(dayNumber, mealID int) bool
	ExerciseScheduled(dayNumber, exerciseID int) bool
}

type Service struct {
	store    Store
	schedule daySchedule
	metrics  *metrics.Manager
	now      func() time.Time
}

func NewService(
	store Store,
	schedule daySchedule,
	metricsManager *metrics.Manager,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:    store,
		schedule: schedule,
		metrics:  metricsManager,
		now:      now,
	}
}

// GetOrCreate returns the day's record, creating an empty one dated today
// when the day has not been touched yet.
func (s *Service) GetOrCreate(ctx context.Context, userID, dayNumber int) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.getOrCreate")
	span.SetAttributes(attribute.Int("progress.day", dayNumber))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.getOrCreate(ctx, userID, dayNumber)
}

func (s *Service) getOrCreate(ctx context.Context, userID, dayNumber int) (*Progress, error) {
	p, err := s.store.Get(ctx, userID, dayNumber)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrProgressNotFound) {
		return nil, fmt.Errorf("get progress for day %d: %w", dayNumber, err)
	}

	p, created, err := s.store.GetOrCreate(ctx, userID, dayNumber, plan.ISODate(s.now()))
	if err != nil {
		return nil, fmt.Errorf("get or create progress for day %d: %w", dayNumber, err)
	}
	if created {
		log.Debugf("created progress %d for user %d, day %d", p.ID, userID, dayNumber)
		s.metrics.CounterProgressCreated.Inc()
	}
	return p, nil
}

// ApplyPartialUpdate merges the present patch fields into the day's record.
func (s *Service) ApplyPartialUpdate(ctx context.Context, userID, dayNumber int, patch Patch) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.update")
	span.SetAttributes(attribute.Int("progress.day", dayNumber))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.update(ctx, userID, dayNumber, patch)
	if err != nil {
		return nil, err
	}
	s.metrics.CounterProgressUpdates.WithLabelValues("patch").Inc()
	return p, nil
}

func (s *Service) update(ctx context.Context, userID, dayNumber int, patch Patch) (*Progress, error) {
	existing, err := s.getOrCreate(ctx, userID, dayNumber)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	updated, err := s.store.Update(ctx, existing.ID, patch)
	if errors.Is(err, ErrProgressNotFound) {
		// record vanished between the two calls, resolve it again once
		log.Warnf("progress %d for day %d not found on update, retrying", existing.ID, dayNumber)
		if existing, err = s.getOrCreate(ctx, userID, dayNumber); err != nil {
			return nil, err
		}
		updated, err = s.store.Update(ctx, existing.ID, patch)
	}
	if err != nil {
		return nil, fmt.Errorf("update progress %d: %w", existing.ID, err)
	}

	return updated, nil
}

func (s *Service) SetNotes(ctx context.Context, userID, dayNumber int, notes string) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.notes")
	span.SetAttributes(attribute.Int("progress.day", dayNumber))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.update(ctx, userID, dayNumber, Patch{Notes: &notes})
	if err != nil {
		return nil, err
	}
	s.metrics.CounterNotes.Inc()
	return p, nil
}

// ToggleMeal marks the meal done, or undone if it already was. Meals not
// planned for the day's weekday are rejected.
func (s *Service) ToggleMeal(ctx context.Context, userID, dayNumber, mealID int) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.toggleMeal")
	span.SetAttributes(
		attribute.Int("progress.day", dayNumber),
		attribute.Int("progress.meal", mealID),
	)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !s.schedule.MealScheduled(dayNumber, mealID) {
		return nil, pkg.NewValidationError(fmt.Sprintf("Meal %d is not scheduled on day %d", mealID, dayNumber))
	}

	existing, err := s.getOrCreate(ctx, userID, dayNumber)
	if err != nil {
		return nil, err
	}
	meals, err := existing.CompletedMeals()
	if err != nil {
		return nil, err
	}

	encoded := meals.Toggle(mealID).Encode()
	p, err := s.update(ctx, userID, dayNumber, Patch{MealCompletions: &encoded})
	if err != nil {
		return nil, err
	}
	s.metrics.CounterProgressUpdates.WithLabelValues("meal").Inc()
	return p, nil
}

// ToggleExercise marks the exercise done, or undone if it already was.
func (s *Service) ToggleExercise(ctx context.Context, userID, dayNumber, exerciseID int) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.toggleExercise")
	span.SetAttributes(
		attribute.Int("progress.day", dayNumber),
		attribute.Int("progress.exercise", exerciseID),
	)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !s.schedule.ExerciseScheduled(dayNumber, exerciseID) {
		return nil, pkg.NewValidationError(fmt.Sprintf("Exercise %d is not scheduled on day %d", exerciseID, dayNumber))
	}

	existing, err := s.getOrCreate(ctx, userID, dayNumber)
	if err != nil {
		return nil, err
	}
	exercises, err := existing.CompletedExercises()
	if err != nil {
		return nil, err
	}

	encoded := exercises.Toggle(exerciseID).Encode()
	p, err := s.update(ctx, userID, dayNumber, Patch{ExerciseCompletions: &encoded})
	if err != nil {
		return nil, err
	}
	s.metrics.CounterProgressUpdates.WithLabelValues("exercise").Inc()
	return p, nil
}

// WeekProgress returns 7 records for days (week-1)*7+1 to (week-1)*7+7.
// Days past the plan end are materialized like any other day.
func (s *Service) WeekProgress(ctx context.Context, userID, weekNumber int) (_ []Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.week")
	span.SetAttributes(attribute.Int("progress.week", weekNumber))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	startDay := (weekNumber-1)*plan.DaysInWeek + 1
	records := make([]Progress, 0, plan.DaysInWeek)
	for dayNumber := startDay; dayNumber < startDay+plan.DaysInWeek; dayNumber++ {
		p, err := s.getOrCreate(ctx, userID, dayNumber)
		if err != nil {
			return nil, err
		}
		records = append(records, *p)
	}
	return records, nil
}

// List returns all the user's records that exist so far.
func (s *Service) List(ctx context.Context, userID int) ([]Progress, error) {
	records, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress for user %d: %w", userID, err)
	}
	return records, nil
}
