package implementation

import (
	"context"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/mapper"
	"baristabox-be/internal/model"
	"baristabox-be/internal/repository/contract"
)

type ProblemRepositoryImpl struct {
	tables TableAccess
	mapper *mapper.ProblemMapper
}

func NewProblemRepository(tables TableAccess) contract.ProblemRepository {
	return &ProblemRepositoryImpl{
		tables: tables,
		mapper: mapper.NewProblemMapper(),
	}
}

func (r *ProblemRepositoryImpl) Create(ctx context.Context, problem *entity.Problem) error {
	return r.tables.update(troubleshootingFile, func(t *knowledgeTables) error {
		if _, exists := t.troubleshooting.Get(problem.Key); exists {
			return entity.ErrProblemExists
		}
		t.troubleshooting.Set(problem.Key, r.mapper.ToModel(problem))
		return nil
	})
}

func (r *ProblemRepositoryImpl) UpdateDescription(ctx context.Context, key, description string) error {
	return r.tables.update(troubleshootingFile, func(t *knowledgeTables) error {
		rec, exists := t.troubleshooting.Get(key)
		if !exists {
			return entity.ErrProblemNotFound
		}
		rec.Description = description
		t.troubleshooting.Set(key, rec)
		return nil
	})
}

func (r *ProblemRepositoryImpl) Delete(ctx context.Context, key string) error {
	return r.tables.update(troubleshootingFile, func(t *knowledgeTables) error {
		if _, present := t.troubleshooting.Delete(key); !present {
			return entity.ErrProblemNotFound
		}
		return nil
	})
}

func (r *ProblemRepositoryImpl) AddCause(ctx context.Context, key string, cause entity.Cause) error {
	return r.tables.update(troubleshootingFile, func(t *knowledgeTables) error {
		rec, exists := t.troubleshooting.Get(key)
		if !exists {
			return entity.ErrProblemNotFound
		}
		if rec.Causes == nil {
			rec.Causes = model.NewCauseMap()
		}
		if _, dup := rec.Causes.Get(cause.Key); dup {
			return entity.ErrCauseExists
		}
		rec.Causes.Set(cause.Key, model.CauseRecord{Question: cause.Question, Solution: cause.Solution})
		t.troubleshooting.Set(key, rec)
		return nil
	})
}

func (r *ProblemRepositoryImpl) UpdateCause(ctx context.Context, key string, cause entity.Cause) error {
	return r.tables.update(troubleshootingFile, func(t *knowledgeTables) error {
		rec, exists := t.troubleshooting.Get(key)
		if !exists {
			return entity.ErrProblemNotFound
		}
		if rec.Causes == nil {
			return entity.ErrCauseNotFound
		}
		if _, ok := rec.Causes.Get(cause.Key); !ok {
			return entity.ErrCauseNotFound
		}
		rec.Causes.Set(cause.Key, model.CauseRecord{Question: cause.Question, Solution: cause.Solution})
		return nil
	})
}

func (r *ProblemRepositoryImpl) DeleteCause(ctx context.Context, key, causeKey string) error {
	return r.tables.update(troubleshootingFile, func(t *knowledgeTables) error {
		rec, exists := t.troubleshooting.Get(key)
		if !exists {
			return entity.ErrProblemNotFound
		}
		if rec.Causes == nil {
			return entity.ErrCauseNotFound
		}
		if _, present := rec.Causes.Delete(causeKey); !present {
			return entity.ErrCauseNotFound
		}
		return nil
	})
}

func (r *ProblemRepositoryImpl) FindOne(ctx context.Context, key string) (*entity.Problem, error) {
	var found *entity.Problem
	err := r.tables.view(func(t *knowledgeTables) error {
		if rec, ok := t.troubleshooting.Get(key); ok {
			found = r.mapper.ToEntity(key, rec)
		}
		return nil
	})
	return found, err
}

func (r *ProblemRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Problem, error) {
	var res []*entity.Problem
	err := r.tables.view(func(t *knowledgeTables) error {
		res = make([]*entity.Problem, 0, t.troubleshooting.Len())
		for pair := t.troubleshooting.Oldest(); pair != nil; pair = pair.Next() {
			res = append(res, r.mapper.ToEntity(pair.Key, pair.Value))
		}
		return nil
	})
	return res, err
}

func (r *ProblemRepositoryImpl) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.tables.view(func(t *knowledgeTables) error {
		keys = make([]string, 0, t.troubleshooting.Len())
		for pair := t.troubleshooting.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
		}
		return nil
	})
	return keys, err
}
