package implementation

import (
	"context"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/mapper"
	"baristabox-be/internal/repository/contract"
)

type TrainingRepositoryImpl struct {
	tables TableAccess
	mapper *mapper.TrainingMapper
}

func NewTrainingRepository(tables TableAccess) contract.TrainingRepository {
	return &TrainingRepositoryImpl{
		tables: tables,
		mapper: mapper.NewTrainingMapper(),
	}
}

func (r *TrainingRepositoryImpl) Add(ctx context.Context, examples []entity.TrainingExample) (int, error) {
	added := 0
	err := r.tables.update(trainingFile, func(t *knowledgeTables) error {
		seen := make(map[entity.TrainingExample]bool, len(t.training)+len(examples))
		for _, row := range t.training {
			if ex, ok := r.mapper.ToEntity(row); ok {
				seen[ex] = true
			}
		}
		for _, ex := range examples {
			if seen[ex] {
				continue
			}
			seen[ex] = true
			t.training = append(t.training, r.mapper.ToModel(ex))
			added++
		}
		return nil
	})
	return added, err
}

func (r *TrainingRepositoryImpl) Delete(ctx context.Context, examples []entity.TrainingExample) (int, error) {
	drop := make(map[entity.TrainingExample]bool, len(examples))
	for _, ex := range examples {
		drop[ex] = true
	}
	return r.removeWhere(func(ex entity.TrainingExample) bool { return drop[ex] })
}

func (r *TrainingRepositoryImpl) DeleteByProblem(ctx context.Context, problem string) (int, error) {
	return r.removeWhere(func(ex entity.TrainingExample) bool { return ex.Problem == problem })
}

func (r *TrainingRepositoryImpl) FindAll(ctx context.Context) ([]entity.TrainingExample, error) {
	return r.findWhere(func(entity.TrainingExample) bool { return true })
}

func (r *TrainingRepositoryImpl) FindAllByProblem(ctx context.Context, problem string) ([]entity.TrainingExample, error) {
	return r.findWhere(func(ex entity.TrainingExample) bool { return ex.Problem == problem })
}

func (r *TrainingRepositoryImpl) removeWhere(match func(entity.TrainingExample) bool) (int, error) {
	removed := 0
	err := r.tables.update(trainingFile, func(t *knowledgeTables) error {
		kept := t.training[:0]
		for _, row := range t.training {
			if ex, ok := r.mapper.ToEntity(row); ok && match(ex) {
				removed++
				continue
			}
			kept = append(kept, row)
		}
		t.training = kept
		return nil
	})
	return removed, err
}

func (r *TrainingRepositoryImpl) findWhere(match func(entity.TrainingExample) bool) ([]entity.TrainingExample, error) {
	res := []entity.TrainingExample{}
	err := r.tables.view(func(t *knowledgeTables) error {
		for _, row := range t.training {
			if ex, ok := r.mapper.ToEntity(row); ok && match(ex) {
				res = append(res, ex)
			}
		}
		return nil
	})
	return res, err
}
