package memory

import (
	"context"
	"time"

	"baristabox-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) store.Repository {
	// Expired sessions are purged every 10 minutes.
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// Save stores a copy so callers can keep mutating their value.
func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	r.cache.Set(session.ID, session.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, bool, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session).Clone(), true, nil
	}
	return nil, false, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
