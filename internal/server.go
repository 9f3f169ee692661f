package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/mealplan/internal/config"
	"github.com/2beens/mealplan/internal/middleware"
	"github.com/2beens/mealplan/internal/misc"
	"github.com/2beens/mealplan/internal/plan"
	"github.com/2beens/mealplan/internal/progress"
	"github.com/2beens/mealplan/internal/stats"
	"github.com/2beens/mealplan/internal/telemetry/metrics"
	"github.com/2beens/mealplan/internal/telemetry/tracing"
	"github.com/2beens/mealplan/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	startedAt         time.Time
	now               func() time.Time

	config   *config.Config
	calendar *plan.Calendar
	catalog  *plan.Catalog

	progressService *progress.Service
	aggregator      *stats.Aggregator

	// nil when redis is not configured
	redisClient *redis.Client

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
	OtelServiceName         string
	// defaults to time.Now
	Now func() time.Time
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	if params.Config == nil {
		return nil, errors.New("config is nil")
	}

	epoch, err := plan.ParseEpoch(params.Config.PlanStartDate)
	if err != nil {
		return nil, fmt.Errorf("parse plan start date: %w", err)
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	promRegistry := metrics.SetupPrometheus(plan.ISODate(epoch))
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	var rdb *redis.Client
	if params.Config.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     params.Config.RedisAddr(),
			Password: params.RedisPassword,
			DB:       0,
		})
		if params.HoneycombTracingEnabled {
			rdb.AddHook(redisotel.NewTracingHook())
		}

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	} else {
		log.Warnln("redis host not set, rate limiting disabled")
	}

	serviceName := params.OtelServiceName
	if serviceName == "" {
		serviceName = "mealplan-backend"
	}
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	calendar := plan.NewCalendar(epoch)
	catalog := plan.NewCatalog()
	progressService := progress.NewService(
		progress.NewMemStore(),
		plan.NewSchedule(catalog, calendar),
		metricsManager,
		now,
	)

	return &Server{
		versionInfo: params.VersionInfo,
		startedAt:   now(),
		now:         now,

		config:   params.Config,
		calendar: calendar,
		catalog:  catalog,

		progressService: progressService,
		aggregator:      stats.NewAggregator(catalog, progressService, calendar),

		redisClient: rdb,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	// a typed nil client must not reach the health handler
	var rateLimiter middleware.RequestRateLimiter
	miscHandler := misc.NewHandler(s.versionInfo, s.startedAt, nil)
	if s.redisClient != nil {
		miscHandler = misc.NewHandler(s.versionInfo, s.startedAt, s.redisClient)
		rateLimiter = redis_rate.NewLimiter(s.redisClient)
	}
	miscHandler.SetupRoutes(r)

	apiRouter := r.PathPrefix("/api").Subrouter()

	planHandler := plan.NewHandler(s.catalog, s.calendar, s.config.CatalogCacheSizeMB, s.now)
	planHandler.SetupRoutes(apiRouter)

	progressHandler := progress.NewHandler(s.progressService, s.config.UserID)
	progressHandler.SetupRoutes(apiRouter, rateLimiter, s.config.RateLimitAllowedPerMin, s.metricsManager)

	statsHandler := stats.NewHandler(s.aggregator, s.config.UserID)
	statsHandler.SetupRoutes(apiRouter)

	// all the rest - unhandled paths
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteError(w, pkg.NewNotFoundError("Not found"))
	}).Name("unknown")

	r.Use(middleware.RequestID())
	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      otelhttp.NewHandler(router, "mealplan-http"),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops both http servers, then the telemetry and redis
// connections. Errors from every step are combined.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Duration(s.config.ShutdownTimeoutSeconds) * time.Second
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		} else {
			log.Warnln("server shut down")
		}
	}

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		} else {
			log.Warnln("metrics server shut down")
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if ok := sentry.Flush(2 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
