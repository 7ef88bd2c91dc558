package contract

import (
	"context"

	"baristabox-be/internal/entity"
)

type TrainingRepository interface {
	// Add appends examples not already present and returns how many were added.
	Add(ctx context.Context, examples []entity.TrainingExample) (int, error)
	Delete(ctx context.Context, examples []entity.TrainingExample) (int, error)
	DeleteByProblem(ctx context.Context, problem string) (int, error)
	FindAll(ctx context.Context) ([]entity.TrainingExample, error)
	FindAllByProblem(ctx context.Context, problem string) ([]entity.TrainingExample, error)
}
