package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/2beens/mealplan/internal/misc"
)

// RedisIntegrationTestSuite runs the full router against a real redis
// started with dockertest. It is skipped when docker is not reachable.
type RedisIntegrationTestSuite struct {
	suite.Suite

	dockerPool *dockertest.Pool
	server     *Server
	httpServer *httptest.Server
	teardown   []func()
}

func TestRedisIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration tests in short mode")
	}
	suite.Run(t, new(RedisIntegrationTestSuite))
}

func (s *RedisIntegrationTestSuite) SetupSuite() {
	var err error
	s.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		s.T().Skipf("could not create new dockertest pool: %s", err)
	}
	if err = s.dockerPool.Client.Ping(); err != nil {
		s.T().Skipf("could not ping dockertest pool: %s", err)
	}

	redisPort, err := s.redisSetup()
	if err != nil {
		s.cleanup()
		s.T().Fatalf("failed to setup redis: %s", err)
	}

	cfg := getTestConfig(s.T())
	cfg.RedisHost = "localhost"
	cfg.RedisPort = redisPort
	cfg.RateLimitAllowedPerMin = 2

	s.server, err = NewServer(context.Background(), NewServerParams{
		Config:      cfg,
		VersionInfo: "test-version-info",
	})
	if err != nil {
		s.cleanup()
		s.T().Fatalf("new server: %s", err)
	}

	s.httpServer = httptest.NewServer(s.server.routerSetup())
}

func (s *RedisIntegrationTestSuite) TearDownSuite() {
	s.cleanup()
}

func (s *RedisIntegrationTestSuite) cleanup() {
	if s.httpServer != nil {
		s.httpServer.Close()
	}
	if s.server != nil {
		if err := s.server.GracefulShutdown(); err != nil {
			fmt.Printf(" --> test suite server shutdown: %s\n", err)
		}
	}
	for _, teardown := range s.teardown {
		teardown()
	}
}

func (s *RedisIntegrationTestSuite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %w", err)
	}

	s.teardown = append(s.teardown, func() {
		if err := s.dockerPool.Purge(redisResource); err != nil {
			fmt.Printf("redis teardown: %s\n", err)
		}
	})

	redisPort := redisResource.GetPort("6379/tcp")
	if err := s.dockerPool.Retry(func() error {
		rdb := redis.NewClient(&redis.Options{Addr: "localhost:" + redisPort})
		defer rdb.Close()
		return rdb.Ping(context.Background()).Err()
	}); err != nil {
		return "", fmt.Errorf("wait for redis: %w", err)
	}

	return redisPort, nil
}

func (s *RedisIntegrationTestSuite) TestHealth_RedisOK() {
	resp, err := http.Get(s.httpServer.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var health misc.HealthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&health))
	s.Equal("ok", health.Redis)
}

func (s *RedisIntegrationTestSuite) TestProgressWrites_RateLimited() {
	post := func() *http.Response {
		resp, err := http.Post(
			s.httpServer.URL+"/api/progress/5",
			"application/json",
			strings.NewReader(`{"dailyWalkCompleted":true}`),
		)
		s.Require().NoError(err)
		return resp
	}

	for i := 0; i < 2; i++ {
		resp := post()
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Require().NoError(resp.Body.Close())
	}

	resp := post()
	defer resp.Body.Close()
	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("Retry-After"))
	s.Equal(float64(1), testutil.ToFloat64(s.server.metricsManager.CounterRateLimitedRequests))

	// reads are not limited
	for i := 0; i < 3; i++ {
		getResp, err := http.Get(s.httpServer.URL + "/api/progress/5")
		s.Require().NoError(err)
		s.Equal(http.StatusOK, getResp.StatusCode)
		s.Require().NoError(getResp.Body.Close())
	}
}
