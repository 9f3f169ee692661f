package progress

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/mealplan/internal/middleware"
	"github.com/2beens/mealplan/internal/plan"
	"github.com/2beens/mealplan/internal/telemetry/metrics"
	"github.com/2beens/mealplan/internal/telemetry/tracing"
	"github.com/2beens/mealplan/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=progress_test
type progressService interface {
	GetOrCreate(ctx context.Context, userID, dayNumber int) (*Progress, error)
	ApplyPartialUpdate(ctx context.Context, userID, dayNumber int, patch Patch) (*Progress, error)
	SetNotes(ctx context.Context, userID, dayNumber int, notes string) (*Progress, error)
	ToggleMeal(ctx context.Context, userID, dayNumber, mealID int) (*Progress, error)
	ToggleExercise(ctx context.Context, userID, dayNumber, exerciseID int) (*Progress, error)
	WeekProgress(ctx context.Context, userID, weekNumber int) ([]Progress, error)
	List(ctx context.Context, userID int) ([]Progress, error)
}

type Handler struct {
	service progressService
	userID  int
}

func NewHandler(service progressService, userID int) *Handler {
	return &Handler{
		service: service,
		userID:  userID,
	}
}

// SetupRoutes registers the progress routes on the /api router. Writes are
// rate limited when a limiter is given.
func (handler *Handler) SetupRoutes(
	apiRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	apiRouter.HandleFunc("/progress", handler.HandleList).Methods("GET").Name("progress-list")
	apiRouter.HandleFunc("/progress/{dayNumber}", handler.HandleGet).Methods("GET").Name("progress-get")
	apiRouter.HandleFunc("/weekly-summary/{weekNumber}", handler.HandleWeeklySummary).Methods("GET").Name("weekly-summary")

	writeRouter := apiRouter.NewRoute().Subrouter()
	writeRouter.HandleFunc("/progress/{dayNumber}", handler.HandleUpdate).Methods("POST").Name("progress-update")
	writeRouter.HandleFunc("/notes/{dayNumber}", handler.HandleSetNotes).Methods("POST").Name("notes")
	writeRouter.
		HandleFunc("/progress/{dayNumber}/meals/{mealId}/toggle", handler.HandleToggleMeal).
		Methods("POST").Name("progress-toggle-meal")
	writeRouter.
		HandleFunc("/progress/{dayNumber}/exercises/{exerciseId}/toggle", handler.HandleToggleExercise).
		Methods("POST").Name("progress-toggle-exercise")

	if rateLimiter != nil {
		writeRouter.Use(middleware.RateLimit(rateLimiter, "progress", allowedPerMin, metricsManager))
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	dayNumber, err := pathInt(r, "dayNumber", "Invalid day number")
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	p, err := handler.service.GetOrCreate(ctx, handler.userID, dayNumber)
	if err != nil {
		log.Errorf("get progress for day %d: %s", dayNumber, err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, p)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.list")
	defer span.End()

	records, err := handler.service.List(ctx, handler.userID)
	if err != nil {
		log.Errorf("list progress: %s", err)
		pkg.WriteError(w, err)
		return
	}
	if records == nil {
		records = []Progress{}
	}

	pkg.WriteJSON(w, http.StatusOK, records)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.update")
	defer span.End()

	dayNumber, err := pathInt(r, "dayNumber", "Invalid day number")
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	patch, err := DecodePatch(body)
	if err != nil {
		log.Debugf("update progress for day %d, invalid body: %s", dayNumber, err)
		pkg.WriteError(w, err)
		return
	}

	p, err := handler.service.ApplyPartialUpdate(ctx, handler.userID, dayNumber, patch)
	if err != nil {
		log.Errorf("update progress for day %d: %s", dayNumber, err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, p)
}

func (handler *Handler) HandleSetNotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.notes")
	defer span.End()

	dayNumber, err := pathInt(r, "dayNumber", "Invalid day number")
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	notes, err := DecodeNotes(body)
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	p, err := handler.service.SetNotes(ctx, handler.userID, dayNumber, notes)
	if err != nil {
		log.Errorf("set notes for day %d: %s", dayNumber, err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, p)
}

func (handler *Handler) HandleToggleMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.toggleMeal")
	defer span.End()

	dayNumber, err := pathInt(r, "dayNumber", "Invalid day number")
	if err != nil {
		pkg.WriteError(w, err)
		return
	}
	mealID, err := pathInt(r, "mealId", "Invalid meal id")
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	p, err := handler.service.ToggleMeal(ctx, handler.userID, dayNumber, mealID)
	if err != nil {
		log.Errorf("toggle meal %d for day %d: %s", mealID, dayNumber, err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, p)
}

func (handler *Handler) HandleToggleExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.toggleExercise")
	defer span.End()

	dayNumber, err := pathInt(r, "dayNumber", "Invalid day number")
	if err != nil {
		pkg.WriteError(w, err)
		return
	}
	exerciseID, err := pathInt(r, "exerciseId", "Invalid exercise id")
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	p, err := handler.service.ToggleExercise(ctx, handler.userID, dayNumber, exerciseID)
	if err != nil {
		log.Errorf("toggle exercise %d for day %d: %s", exerciseID, dayNumber, err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, p)
}

func (handler *Handler) HandleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.weeklySummary")
	defer span.End()

	weekNumber, err := pathInt(r, "weekNumber", "Invalid week number")
	if err == nil && (weekNumber < 1 || weekNumber > plan.TotalWeeks) {
		err = pkg.NewValidationError("Invalid week number")
	}
	if err != nil {
		pkg.WriteError(w, err)
		return
	}

	records, err := handler.service.WeekProgress(ctx, handler.userID, weekNumber)
	if err != nil {
		log.Errorf("weekly summary for week %d: %s", weekNumber, err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, records)
}

func pathInt(r *http.Request, name, invalidMessage string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, pkg.NewValidationError(invalidMessage)
	}
	return v, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, pkg.NewValidationError(invalidDataMessage, pkg.FieldError{
			Field:   "body",
			Message: fmt.Sprintf("Unreadable body: %s", err),
		})
	}
	return body, nil
}
