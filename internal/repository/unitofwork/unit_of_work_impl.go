package unitofwork

import (
	"context"
	"fmt"

	"baristabox-be/internal/repository/contract"
	"baristabox-be/internal/repository/implementation"
)

type UnitOfWorkImpl struct {
	store *implementation.KnowledgeStore
	tx    *implementation.KnowledgeTx
}

func NewUnitOfWork(store *implementation.KnowledgeStore) UnitOfWork {
	return &UnitOfWorkImpl{
		store: store,
	}
}

func (u *UnitOfWorkImpl) tables() implementation.TableAccess {
	if u.tx != nil {
		return u.tx
	}
	return u.store
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.tx = u.store.BeginTx()
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit()
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback()
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) BeanRepository() contract.BeanRepository {
	return implementation.NewBeanRepository(u.tables())
}

func (u *UnitOfWorkImpl) RecipeRepository() contract.RecipeRepository {
	return implementation.NewRecipeRepository(u.tables())
}

func (u *UnitOfWorkImpl) ProblemRepository() contract.ProblemRepository {
	return implementation.NewProblemRepository(u.tables())
}

func (u *UnitOfWorkImpl) TrainingRepository() contract.TrainingRepository {
	return implementation.NewTrainingRepository(u.tables())
}
