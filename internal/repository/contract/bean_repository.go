package contract

import (
	"context"

	"baristabox-be/internal/entity"
)

type BeanRepository interface {
	Create(ctx context.Context, bean *entity.Bean) error
	Update(ctx context.Context, bean *entity.Bean) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*entity.Bean, error)
	FindAll(ctx context.Context) ([]*entity.Bean, error)
	// FindFirstNamedIn returns the first bean, in store order, whose name
	// occurs case-insensitively inside text.
	FindFirstNamedIn(ctx context.Context, text string) (*entity.Bean, error)
	Count(ctx context.Context) (int, error)
}
