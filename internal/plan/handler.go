package plan

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/mealplan/internal/telemetry/tracing"
	"github.com/2beens/mealplan/pkg"

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	megabyte = 1024 * 1024
	// catalog is immutable, cached entries only expire to keep the cache tidy
	catalogCacheExpire = 24 * 60 * 60
)

type WeekPlanResponse struct {
	WeekNumber int          `json:"weekNumber"`
	DateRange  string       `json:"dateRange"`
	Days       []DayMapping `json:"days"`
}

type CurrentDayResponse struct {
	DayNumber     int     `json:"dayNumber"`
	WeekNumber    int     `json:"weekNumber"`
	Weekday       Weekday `json:"day"`
	Date          string  `json:"date"`
	WeekDateRange string  `json:"weekDateRange"`
	TotalDays     int     `json:"totalDays"`
}

type Handler struct {
	catalog  *Catalog
	calendar *Calendar
	cache    *freecache.Cache
	now      func() time.Time
}

func NewHandler(
	catalog *Catalog,
	calendar *Calendar,
	cacheSizeMB int,
	now func() time.Time,
) *Handler {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{
		catalog:  catalog,
		calendar: calendar,
		cache:    freecache.NewCache(cacheSizeMB * megabyte),
		now:      now,
	}
}

func (handler *Handler) SetupRoutes(apiRouter *mux.Router) {
	apiRouter.HandleFunc("/meals/{day}", handler.HandleGetMeals).Methods("GET").Name("meals")
	apiRouter.HandleFunc("/workouts/{day}", handler.HandleGetWorkout).Methods("GET").Name("workouts")
	apiRouter.HandleFunc("/plan/day/{dayNumber}", handler.HandleGetDayPlan).Methods("GET").Name("plan-day")
	apiRouter.HandleFunc("/plan/week/{weekNumber}", handler.HandleGetWeekPlan).Methods("GET").Name("plan-week")
	apiRouter.HandleFunc("/plan/current", handler.HandleGetCurrent).Methods("GET").Name("plan-current")
}

func (handler *Handler) HandleGetMeals(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.meals")
	defer span.End()

	wd, ok := ParseWeekday(mux.Vars(r)["day"])
	span.SetAttributes(attribute.String("plan.weekday", wd.String()))
	if !ok {
		pkg.WriteJSONResponseOK(w, "[]")
		return
	}

	cacheKey := fmt.Sprintf("meals::%s", wd)
	mealsJson, err := handler.cachedJSON(cacheKey, func() any {
		return handler.catalog.MealsForWeekday(wd)
	})
	if err != nil {
		log.Errorf("get meals for %s: %s", wd, err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, mealsJson)
}

func (handler *Handler) HandleGetWorkout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.workout")
	defer span.End()

	wd, _ := ParseWeekday(mux.Vars(r)["day"])
	span.SetAttributes(attribute.String("plan.weekday", wd.String()))

	workout, ok := handler.catalog.WorkoutWithExercises(wd)
	if !ok {
		pkg.WriteError(w, pkg.NewNotFoundError("Workout not found"))
		return
	}

	cacheKey := fmt.Sprintf("workout::%s", wd)
	workoutJson, err := handler.cachedJSON(cacheKey, func() any {
		return workout
	})
	if err != nil {
		log.Errorf("get workout for %s: %s", wd, err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutJson)
}

func (handler *Handler) HandleGetDayPlan(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.day")
	defer span.End()

	dayNumber, err := strconv.Atoi(mux.Vars(r)["dayNumber"])
	if err != nil || dayNumber < 1 || dayNumber > TotalDays {
		pkg.WriteError(w, pkg.NewValidationError("Invalid day number"))
		return
	}
	span.SetAttributes(attribute.Int("plan.day", dayNumber))

	pkg.WriteJSON(w, http.StatusOK, handler.catalog.DayPlan(handler.calendar, dayNumber))
}

func (handler *Handler) HandleGetWeekPlan(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.week")
	defer span.End()

	weekNumber, err := strconv.Atoi(mux.Vars(r)["weekNumber"])
	if err != nil || weekNumber < 1 || weekNumber > TotalWeeks {
		pkg.WriteError(w, pkg.NewValidationError("Invalid week number"))
		return
	}
	span.SetAttributes(attribute.Int("plan.week", weekNumber))

	pkg.WriteJSON(w, http.StatusOK, WeekPlanResponse{
		WeekNumber: weekNumber,
		DateRange:  handler.calendar.WeekDateRange(weekNumber),
		Days:       handler.calendar.WeekDays(weekNumber),
	})
}

func (handler *Handler) HandleGetCurrent(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.plan.current")
	defer span.End()

	now := handler.now()
	dayNumber := handler.calendar.CurrentDayNumber(now)
	weekNumber := handler.calendar.CurrentWeekNumber(now)

	pkg.WriteJSON(w, http.StatusOK, CurrentDayResponse{
		DayNumber:     dayNumber,
		WeekNumber:    weekNumber,
		Weekday:       handler.calendar.Weekday(dayNumber),
		Date:          ISODate(handler.calendar.Date(dayNumber)),
		WeekDateRange: handler.calendar.WeekDateRange(weekNumber),
		TotalDays:     TotalDays,
	})
}

// cachedJSON returns the encoded value stored under key, encoding and
// caching load() on a miss.
func (handler *Handler) cachedJSON(key string, load func() any) ([]byte, error) {
	if cached, err := handler.cache.Get([]byte(key)); err == nil {
		log.Tracef("found %s in catalog cache", key)
		return cached, nil
	}

	respBytes, err := json.Marshal(load())
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := handler.cache.Set([]byte(key), respBytes, catalogCacheExpire); err != nil {
		log.Errorf("failed to write catalog cache for %s: %s", key, err)
	} else {
		log.Debugf("catalog cache set for: %s", key)
	}

	return respBytes, nil
}
