package mapper

import (
	"baristabox-be/internal/entity"
	"baristabox-be/internal/model"
)

type RecipeMapper struct{}

func NewRecipeMapper() *RecipeMapper {
	return &RecipeMapper{}
}

func (m *RecipeMapper) ToEntity(r *model.RecipeRecord) *entity.Recipe {
	if r == nil {
		return nil
	}
	return &entity.Recipe{
		Id:             r.RecipeId,
		BeanId:         r.BeanId,
		BrewMethod:     r.BrewMethod,
		GrindSize:      r.GrindSize,
		CoffeeGrams:    r.CoffeeGrams,
		WaterGrams:     r.WaterGrams,
		WaterTempC:     r.WaterTempC,
		TechniqueNotes: r.TechniqueNotes,
	}
}

func (m *RecipeMapper) ToModel(e *entity.Recipe) *model.RecipeRecord {
	if e == nil {
		return nil
	}
	return &model.RecipeRecord{
		RecipeId:       e.Id,
		BeanId:         e.BeanId,
		BrewMethod:     e.BrewMethod,
		GrindSize:      e.GrindSize,
		CoffeeGrams:    e.CoffeeGrams,
		WaterGrams:     e.WaterGrams,
		WaterTempC:     e.WaterTempC,
		TechniqueNotes: e.TechniqueNotes,
	}
}
