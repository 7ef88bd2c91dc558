package unitofwork

import (
	"context"

	"baristabox-be/internal/repository/contract"
)

// UnitOfWork groups knowledge mutations. Without Begin every repository
// call is written through on its own; after Begin nothing reaches disk until
// Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BeanRepository() contract.BeanRepository
	RecipeRepository() contract.RecipeRepository
	ProblemRepository() contract.ProblemRepository
	TrainingRepository() contract.TrainingRepository
}
