package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"baristabox-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const redisSessionKeyPrefix = "baristabox:session:"

// RedisSessionRepository shares sessions between server replicas.
type RedisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) store.Repository {
	return &RedisSessionRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *store.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.rdb.Set(ctx, redisSessionKeyPrefix+session.ID, data, r.ttl).Err()
}

func (r *RedisSessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, bool, error) {
	data, err := r.rdb.Get(ctx, redisSessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}
	return &session, true, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, redisSessionKeyPrefix+sessionID).Err()
}
