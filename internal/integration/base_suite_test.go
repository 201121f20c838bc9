package integration_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const cacheImageName = "redis:7"

type RedisContainer struct {
	Container        *tcredis.RedisContainer
	ConnectionString string
}

type BaseSuite struct {
	suite.Suite
	cacheContainer *RedisContainer
	redisClient    *redis.Client
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	container, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.cacheContainer = container
	s.redisClient = redis.NewClient(&redis.Options{Addr: container.ConnectionString})
}

func (s *BaseSuite) TearDownSuite() {
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) SetupTest() {
	if s.cacheContainer == nil {
		s.T().Skip("redis container is not available")
	}
}

func getCacheContainer(ctx context.Context) (*RedisContainer, error) {
	container, err := tcredis.Run(ctx, cacheImageName)
	if err != nil {
		return nil, fmt.Errorf("failed to start cache container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &RedisContainer{
		Container:        container,
		ConnectionString: fmt.Sprintf("%s:%s", host, port.Port()),
	}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// accessToken builds an unsigned JWT carrying the given userId claim. The
// client never verifies signatures, it only decodes the identity.
func accessToken(t *testing.T, userID int64) string {
	t.Helper()

	encode := func(v any) string {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		return base64.RawURLEncoding.EncodeToString(raw)
	}

	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	claims := map[string]any{"userId": userID}
	return encode(header) + "." + encode(claims) + ".sig"
}
