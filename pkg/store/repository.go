package store

import "context"

// Repository holds live conversation state between turns.
type Repository interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, bool, error)
	Delete(ctx context.Context, sessionID string) error
}
