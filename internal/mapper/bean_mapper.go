package mapper

import (
	"baristabox-be/internal/entity"
	"baristabox-be/internal/model"
)

type BeanMapper struct{}

func NewBeanMapper() *BeanMapper {
	return &BeanMapper{}
}

func (m *BeanMapper) ToEntity(r *model.BeanRecord) *entity.Bean {
	if r == nil {
		return nil
	}
	return &entity.Bean{
		Id:           r.Id,
		Name:         r.Name,
		Origin:       r.Origin,
		Type:         r.Type,
		RoastLevel:   r.RoastLevel,
		Processing:   r.Processing,
		TastingNotes: r.TastingNotes,
		ExpertTags:   append([]string(nil), r.ExpertTags...),
	}
}

func (m *BeanMapper) ToModel(e *entity.Bean) *model.BeanRecord {
	if e == nil {
		return nil
	}
	return &model.BeanRecord{
		Id:           e.Id,
		Name:         e.Name,
		Origin:       e.Origin,
		Type:         e.Type,
		RoastLevel:   e.RoastLevel,
		Processing:   e.Processing,
		TastingNotes: e.TastingNotes,
		ExpertTags:   append([]string(nil), e.ExpertTags...),
	}
}
