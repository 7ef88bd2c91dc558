package contract

import (
	"context"

	"baristabox-be/internal/entity"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, id string) error
	DeleteByBeanId(ctx context.Context, beanId string) (int, error)
	FindOne(ctx context.Context, id string) (*entity.Recipe, error)
	FindAll(ctx context.Context) ([]*entity.Recipe, error)
	FindAllByBeanId(ctx context.Context, beanId string) ([]*entity.Recipe, error)
	// FindByBeanAndMethod matches brew_method case-insensitively and exactly.
	FindByBeanAndMethod(ctx context.Context, beanId, method string) (*entity.Recipe, error)
	// FindFirstByBeanAndMethodIn matches when the recipe's brew_method occurs
	// case-insensitively inside methodText.
	FindFirstByBeanAndMethodIn(ctx context.Context, beanId, methodText string) (*entity.Recipe, error)
	Count(ctx context.Context) (int, error)
}
