package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/mealplan/internal/telemetry/tracing"
	"github.com/2beens/mealplan/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	redisStatusOK       = "ok"
	redisStatusDisabled = "disabled"
	healthPingTimeout   = 2 * time.Second
)

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis"`
}

type VersionResponse struct {
	Version   string `json:"version"`
	StartedAt string `json:"startedAt"`
}

type Handler struct {
	versionInfo string
	startedAt   time.Time
	// nil when redis is not configured
	redis redisPinger
}

func NewHandler(versionInfo string, startedAt time.Time, redisClient redisPinger) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		startedAt:   startedAt,
		redis:       redisClient,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
}

// handleHealth always answers 200 while the process serves requests, a
// broken redis only degrades rate limiting and is reported in the body.
func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	resp := HealthResponse{
		Status: "ok",
		Redis:  redisStatusDisabled,
	}

	if handler.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		defer cancel()

		if err := handler.redis.Ping(pingCtx).Err(); err != nil {
			log.Errorf("health check, redis ping: %s", err)
			resp.Redis = err.Error()
		} else {
			resp.Redis = redisStatusOK
		}
	}

	span.SetAttributes(attribute.String("health.redis", resp.Redis))
	pkg.WriteJSON(w, http.StatusOK, resp)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, VersionResponse{
		Version:   handler.versionInfo,
		StartedAt: handler.startedAt.UTC().Format(time.RFC3339),
	})
}
