package mapper

import (
	"baristabox-be/internal/entity"
)

type TrainingMapper struct{}

func NewTrainingMapper() *TrainingMapper {
	return &TrainingMapper{}
}

// ToEntity converts one CSV record. Short rows yield ok=false.
func (m *TrainingMapper) ToEntity(row []string) (entity.TrainingExample, bool) {
	if len(row) < 2 {
		return entity.TrainingExample{}, false
	}
	return entity.TrainingExample{Text: row[0], Problem: row[1]}, true
}

func (m *TrainingMapper) ToModel(e entity.TrainingExample) []string {
	return []string{e.Text, e.Problem}
}
