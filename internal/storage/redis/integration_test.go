package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/nrowgame/internal/storage/storagetest"
)

const (
	expireSeconds   = 120
	maxWaitDuration = 120 * time.Second
	redisPort       = "6379/tcp"
)

// IntegrationSuite runs the shared storage behaviour against a real Redis
// in Docker. Enable with NROW_DOCKER_TESTS=1.
type IntegrationSuite struct {
	storagetest.Suite
	pool     *dockertest.Pool
	resource *dockertest.Resource
	client   *redis.Client
}

func TestIntegrationSuite(t *testing.T) {
	if os.Getenv("NROW_DOCKER_TESTS") != "1" {
		t.Skip("set NROW_DOCKER_TESTS=1 to run against a real redis")
	}
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupSuite() {
	pool, err := dockertest.NewPool("")
	s.Require().NoError(err, "could not connect to docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "alpine",
	}, func(config *docker.HostConfig) {
		// stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err, "could not start redis")

	// never returns error
	_ = resource.Expire(expireSeconds)

	pool.MaxWait = maxWaitDuration
	addr := resource.GetHostPort(redisPort)
	err = pool.Retry(func() error {
		s.client = redis.NewClient(&redis.Options{Addr: addr})
		return s.client.Ping(context.Background()).Err()
	})
	if err != nil {
		_ = pool.Purge(resource)
		s.FailNow("could not connect to redis", err)
	}

	s.pool = pool
	s.resource = resource
}

func (s *IntegrationSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.pool != nil && s.resource != nil {
		s.NoError(s.pool.Purge(s.resource))
	}
}

func (s *IntegrationSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(context.Background()).Err())
	s.Storage = NewWithClient(s.client, DefaultConfig())
}
