package contract

import (
	"context"

	"baristabox-be/internal/entity"
)

type ProblemRepository interface {
	Create(ctx context.Context, problem *entity.Problem) error
	UpdateDescription(ctx context.Context, key, description string) error
	Delete(ctx context.Context, key string) error
	AddCause(ctx context.Context, key string, cause entity.Cause) error
	UpdateCause(ctx context.Context, key string, cause entity.Cause) error
	DeleteCause(ctx context.Context, key, causeKey string) error
	FindOne(ctx context.Context, key string) (*entity.Problem, error)
	FindAll(ctx context.Context) ([]*entity.Problem, error)
	Keys(ctx context.Context) ([]string, error)
}
