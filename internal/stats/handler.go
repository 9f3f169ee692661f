package stats

import (
	"net/http"
	"strconv"

	"github.com/2beens/mealplan/internal/plan"
	"github.com/2beens/mealplan/internal/telemetry/tracing"
	"github.com/2beens/mealplan/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	aggregator *Aggregator
	userID     int
}

func NewHandler(aggregator *Aggregator, userID int) *Handler {
	return &Handler{
		aggregator: aggregator,
		userID:     userID,
	}
}

func (handler *Handler) SetupRoutes(apiRouter *mux.Router) {
	apiRouter.HandleFunc("/progress-stats", handler.HandleProgressStats).Methods("GET").Name("progress-stats")
	apiRouter.HandleFunc("/weekly-stats/{weekNumber}", handler.HandleWeekStats).Methods("GET").Name("weekly-stats")
}

func (handler *Handler) HandleProgressStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.overall")
	defer span.End()

	stats, err := handler.aggregator.Overall(ctx, handler.userID)
	if err != nil {
		log.Errorf("progress stats: %s", err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, stats)
}

func (handler *Handler) HandleWeekStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.week")
	defer span.End()

	weekNumber, err := strconv.Atoi(mux.Vars(r)["weekNumber"])
	if err != nil || weekNumber < 1 || weekNumber > plan.TotalWeeks {
		pkg.WriteError(w, pkg.NewValidationError("Invalid week number"))
		return
	}

	stats, err := handler.aggregator.Week(ctx, handler.userID, weekNumber)
	if err != nil {
		log.Errorf("week %d stats: %s", weekNumber, err)
		pkg.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, stats)
}
