package unitofwork

import (
	"context"

	"baristabox-be/internal/repository/implementation"
)

type RepositoryFactoryImpl struct {
	store *implementation.KnowledgeStore
}

func NewRepositoryFactory(store *implementation.KnowledgeStore) RepositoryFactory {
	return &RepositoryFactoryImpl{
		store: store,
	}
}

// NewUnitOfWork is cheap; one per request or per engine call.
func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.store)
}
