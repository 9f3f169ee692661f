package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/mealplan/internal/config"
	"github.com/2beens/mealplan/internal/misc"
	"github.com/2beens/mealplan/internal/plan"
	"github.com/2beens/mealplan/internal/progress"
	"github.com/2beens/mealplan/internal/stats"
)

func getTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse("development", `
[development]
host = "127.0.0.1"
port = 9000
log_level = "debug"
plan_start_date = "2023-03-31"
user_id = 1
allowed_origins = ["http://localhost:3000"]
`)
	require.NoError(t, err)
	return cfg
}

func newTestServer(t *testing.T, now time.Time) *Server {
	t.Helper()
	server, err := NewServer(context.Background(), NewServerParams{
		Config:      getTestConfig(t),
		VersionInfo: "test-version-info",
		Now: func() time.Time {
			return now
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, server.GracefulShutdown())
	})
	return server
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, path, nil)
	} else {
		req, err = http.NewRequest(method, path, strings.NewReader(body))
	}
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestNewServer_InvalidPlanStartDate(t *testing.T) {
	cfg := getTestConfig(t)
	cfg.PlanStartDate = "31.03.2023"

	server, err := NewServer(context.Background(), NewServerParams{Config: cfg})
	require.Error(t, err)
	assert.Nil(t, server)

	server, err = NewServer(context.Background(), NewServerParams{})
	require.Error(t, err)
	assert.Nil(t, server)
}

func TestServer_HealthAndVersion(t *testing.T) {
	now := time.Date(2023, time.April, 2, 10, 0, 0, 0, time.UTC)
	server := newTestServer(t, now)
	r := server.routerSetup()

	rr := doRequest(t, r, "GET", "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var health misc.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "disabled", health.Redis)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	rr = doRequest(t, r, "GET", "/version", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var version misc.VersionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &version))
	assert.Equal(t, "test-version-info", version.Version)
	assert.Equal(t, "2023-04-02T10:00:00Z", version.StartedAt)
}

func TestServer_CurrentDay(t *testing.T) {
	// day 10 is the third plan day of week 2
	now := time.Date(2023, time.April, 9, 18, 30, 0, 0, time.UTC)
	r := newTestServer(t, now).routerSetup()

	rr := doRequest(t, r, "GET", "/api/plan/current", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var current plan.CurrentDayResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &current))
	assert.Equal(t, 10, current.DayNumber)
	assert.Equal(t, 2, current.WeekNumber)
	assert.Equal(t, plan.Wednesday, current.Weekday)
	assert.Equal(t, "April 7 - April 13, 2023", current.WeekDateRange)
	assert.Equal(t, plan.TotalDays, current.TotalDays)
}

func TestServer_ProgressFlowsIntoStats(t *testing.T) {
	server := newTestServer(t, plan.DefaultEpoch)
	r := server.routerSetup()

	rr := doRequest(t, r, "POST", "/api/progress/3", `{"mealCompletions":"[1,2]","workoutCompleted":true}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var p progress.Progress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, 3, p.DayNumber)
	assert.Equal(t, "2023-04-02", p.Date)
	assert.Equal(t, "[1,2]", p.MealCompletions)
	assert.True(t, p.WorkoutCompleted)

	rr = doRequest(t, r, "GET", "/api/weekly-stats/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var week stats.WeekStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &week))
	require.Len(t, week.Days, plan.DaysInWeek)
	assert.Equal(t, "March 31 - April 6, 2023", week.DateRange)
	assert.InDelta(t, 2.0/3.0, week.Days[2].MealCompletionRate, 1e-9)
	assert.True(t, week.Days[2].WorkoutCompleted)

	rr = doRequest(t, r, "GET", "/api/progress-stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var overall stats.ProgressStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overall))
	assert.Len(t, overall.DailyProgress, plan.TotalDays)
	assert.Len(t, overall.WeeklyStats, 6)

	assert.Equal(t, float64(1), testutil.ToFloat64(server.metricsManager.CounterProgressUpdates.WithLabelValues("patch")))
}

func TestServer_UnknownRoute(t *testing.T) {
	r := newTestServer(t, plan.DefaultEpoch).routerSetup()

	for _, path := range []string{"/nothing-here", "/api/nothing-here", "/api/plan/day/abc/extra"} {
		rr := doRequest(t, r, "GET", path, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.JSONEq(t, `{"message":"Not found"}`, rr.Body.String(), path)
	}
}

func TestServer_Cors(t *testing.T) {
	r := newTestServer(t, plan.DefaultEpoch).routerSetup()

	req, err := http.NewRequest("OPTIONS", "/api/progress/1", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest("GET", "/api/meals/monday", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestServer_RequestMetrics(t *testing.T) {
	server := newTestServer(t, plan.DefaultEpoch)
	r := server.routerSetup()

	for i := 0; i < 3; i++ {
		rr := doRequest(t, r, "GET", "/api/workouts/monday", "")
		require.Equal(t, http.StatusOK, rr.Code)
	}
	assert.Equal(t, float64(3), testutil.ToFloat64(server.metricsManager.CounterRequests.WithLabelValues("GET", "200")))
}

func TestServer_LastWeekSummaryAndStatsAgree(t *testing.T) {
	r := newTestServer(t, plan.DefaultEpoch).routerSetup()

	// day 41 is past the plan end but inside week 6
	rr := doRequest(t, r, "POST", "/api/progress/41", `{"dailyWalkCompleted":true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, r, "GET", "/api/weekly-summary/6", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var summary []progress.Progress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	require.Len(t, summary, plan.DaysInWeek)
	assert.Equal(t, 36, summary[0].DayNumber)
	assert.Equal(t, 42, summary[6].DayNumber)

	rr = doRequest(t, r, "GET", "/api/weekly-stats/6", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var week stats.WeekStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &week))
	require.Len(t, week.Days, plan.DaysInWeek)
	for i := range week.Days {
		assert.Equal(t, summary[i].DayNumber, week.Days[i].DayNumber)
	}
	assert.InDelta(t, 1.0/7.0, week.DailyWalkCompletionRate, 1e-9)
}

func TestServer_ToggleUnscheduledID(t *testing.T) {
	r := newTestServer(t, plan.DefaultEpoch).routerSetup()

	// day 1 is a monday, meal 4 belongs to tuesday
	rr := doRequest(t, r, "POST", "/api/progress/1/meals/4/toggle", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Meal 4 is not scheduled on day 1"}`, rr.Body.String())

	rr = doRequest(t, r, "POST", "/api/progress/1/meals/2/toggle", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var p progress.Progress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, "[2]", p.MealCompletions)
}
