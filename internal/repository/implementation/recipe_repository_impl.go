package implementation

import (
	"context"
	"fmt"
	"strings"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/mapper"
	"baristabox-be/internal/model"
	"baristabox-be/internal/repository/contract"
)

type RecipeRepositoryImpl struct {
	tables TableAccess
	mapper *mapper.RecipeMapper
}

func NewRecipeRepository(tables TableAccess) contract.RecipeRepository {
	return &RecipeRepositoryImpl{
		tables: tables,
		mapper: mapper.NewRecipeMapper(),
	}
}

// duplicateOf reports whether another recipe already covers the same bean
// and brew method.
func duplicateOf(recipes []model.RecipeRecord, recipe *entity.Recipe) bool {
	for _, existing := range recipes {
		if existing.RecipeId == recipe.Id {
			continue
		}
		if existing.BeanId == recipe.BeanId && strings.EqualFold(existing.BrewMethod, recipe.BrewMethod) {
			return true
		}
	}
	return false
}

func (r *RecipeRepositoryImpl) Create(ctx context.Context, recipe *entity.Recipe) error {
	return r.tables.update(recipesFile, func(t *knowledgeTables) error {
		for _, existing := range t.recipes {
			if existing.RecipeId == recipe.Id {
				return fmt.Errorf("recipe %s already exists: %w", recipe.Id, entity.ErrConflict)
			}
		}
		if duplicateOf(t.recipes, recipe) {
			return entity.ErrDuplicateRecipe
		}
		t.recipes = append(t.recipes, *r.mapper.ToModel(recipe))
		return nil
	})
}

func (r *RecipeRepositoryImpl) Update(ctx context.Context, recipe *entity.Recipe) error {
	return r.tables.update(recipesFile, func(t *knowledgeTables) error {
		idx := -1
		for i := range t.recipes {
			if t.recipes[i].RecipeId == recipe.Id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return entity.ErrRecipeNotFound
		}
		if duplicateOf(t.recipes, recipe) {
			return entity.ErrDuplicateRecipe
		}
		t.recipes[idx] = *r.mapper.ToModel(recipe)
		return nil
	})
}

func (r *RecipeRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.tables.update(recipesFile, func(t *knowledgeTables) error {
		for i := range t.recipes {
			if t.recipes[i].RecipeId == id {
				t.recipes = append(t.recipes[:i], t.recipes[i+1:]...)
				return nil
			}
		}
		return entity.ErrRecipeNotFound
	})
}

func (r *RecipeRepositoryImpl) DeleteByBeanId(ctx context.Context, beanId string) (int, error) {
	removed := 0
	err := r.tables.update(recipesFile, func(t *knowledgeTables) error {
		kept := t.recipes[:0]
		for _, recipe := range t.recipes {
			if recipe.BeanId == beanId {
				removed++
				continue
			}
			kept = append(kept, recipe)
		}
		t.recipes = kept
		return nil
	})
	return removed, err
}

func (r *RecipeRepositoryImpl) FindOne(ctx context.Context, id string) (*entity.Recipe, error) {
	return r.findFirst(func(rec *model.RecipeRecord) bool { return rec.RecipeId == id })
}

func (r *RecipeRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Recipe, error) {
	return r.findAll(func(*model.RecipeRecord) bool { return true })
}

func (r *RecipeRepositoryImpl) FindAllByBeanId(ctx context.Context, beanId string) ([]*entity.Recipe, error) {
	return r.findAll(func(rec *model.RecipeRecord) bool { return rec.BeanId == beanId })
}

func (r *RecipeRepositoryImpl) FindByBeanAndMethod(ctx context.Context, beanId, method string) (*entity.Recipe, error) {
	return r.findFirst(func(rec *model.RecipeRecord) bool {
		return rec.BeanId == beanId && strings.EqualFold(rec.BrewMethod, method)
	})
}

func (r *RecipeRepositoryImpl) FindFirstByBeanAndMethodIn(ctx context.Context, beanId, methodText string) (*entity.Recipe, error) {
	haystack := strings.ToLower(methodText)
	return r.findFirst(func(rec *model.RecipeRecord) bool {
		method := strings.ToLower(rec.BrewMethod)
		return rec.BeanId == beanId && method != "" && strings.Contains(haystack, method)
	})
}

func (r *RecipeRepositoryImpl) Count(ctx context.Context) (int, error) {
	var n int
	err := r.tables.view(func(t *knowledgeTables) error {
		n = len(t.recipes)
		return nil
	})
	return n, err
}

func (r *RecipeRepositoryImpl) findFirst(match func(*model.RecipeRecord) bool) (*entity.Recipe, error) {
	var found *entity.Recipe
	err := r.tables.view(func(t *knowledgeTables) error {
		for i := range t.recipes {
			if match(&t.recipes[i]) {
				found = r.mapper.ToEntity(&t.recipes[i])
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *RecipeRepositoryImpl) findAll(match func(*model.RecipeRecord) bool) ([]*entity.Recipe, error) {
	res := []*entity.Recipe{}
	err := r.tables.view(func(t *knowledgeTables) error {
		for i := range t.recipes {
			if match(&t.recipes[i]) {
				res = append(res, r.mapper.ToEntity(&t.recipes[i]))
			}
		}
		return nil
	})
	return res, err
}
