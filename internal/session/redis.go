package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisOrderedSet keeps the per-session ordered-items set in Redis, for
// deployments running more than one gateway instance. Keys carry the
// session TTL so sets disappear with the session.
type RedisOrderedSet struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisOrderedSet connects to Redis and verifies the connection
func NewRedisOrderedSet(addr, password string, db int, ttl time.Duration) (*RedisOrderedSet, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisOrderedSet{client: client, ttl: ttl}, nil
}

func key(sessionID string) string {
	return fmt.Sprintf("storefront:ordered:%s", sessionID)
}

func (s *RedisOrderedSet) Add(ctx context.Context, sessionID, productID string) error {
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, key(sessionID), productID)
	pipe.Expire(ctx, key(sessionID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisOrderedSet) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	return s.client.SIsMember(ctx, key(sessionID), productID).Result()
}

func (s *RedisOrderedSet) List(ctx context.Context, sessionID string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, key(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Close closes the underlying Redis connection
func (s *RedisOrderedSet) Close() error {
	return s.client.Close()
}
