package mapper

import (
	"baristabox-be/internal/entity"
	"baristabox-be/internal/model"
)

type ProblemMapper struct{}

func NewProblemMapper() *ProblemMapper {
	return &ProblemMapper{}
}

func (m *ProblemMapper) ToEntity(key string, r model.ProblemRecord) *entity.Problem {
	p := &entity.Problem{
		Key:         key,
		Description: r.Description,
	}
	if r.Causes == nil {
		return p
	}
	p.Causes = make([]entity.Cause, 0, r.Causes.Len())
	for pair := r.Causes.Oldest(); pair != nil; pair = pair.Next() {
		p.Causes = append(p.Causes, entity.Cause{
			Key:      pair.Key,
			Question: pair.Value.Question,
			Solution: pair.Value.Solution,
		})
	}
	return p
}

func (m *ProblemMapper) ToModel(e *entity.Problem) model.ProblemRecord {
	causes := model.NewCauseMap()
	for _, c := range e.Causes {
		causes.Set(c.Key, model.CauseRecord{Question: c.Question, Solution: c.Solution})
	}
	return model.ProblemRecord{
		Description: e.Description,
		Causes:      causes,
	}
}
