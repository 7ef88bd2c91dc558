package implementation

import (
	"context"
	"errors"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/mapper"
	"baristabox-be/internal/model"
	"baristabox-be/internal/repository/contract"
	"baristabox-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BeanEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BeanEmbeddingMapper
}

func NewBeanEmbeddingRepository(db *gorm.DB) contract.BeanEmbeddingRepository {
	return &BeanEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBeanEmbeddingMapper(),
	}
}

func (r *BeanEmbeddingRepositoryImpl) FindByContentHash(ctx context.Context, hash string) (*entity.BeanEmbedding, error) {
	var m model.BeanEmbedding
	query := specification.Apply(r.db.WithContext(ctx), specification.ByContentHash{Hash: hash})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BeanEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.BeanEmbedding) error {
	m := r.mapper.ToModel(embedding)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "content_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding_value", "content"}),
		}).
		Create(m).Error
}

func (r *BeanEmbeddingRepositoryImpl) DeleteByModel(ctx context.Context, modelName string) error {
	return r.db.WithContext(ctx).Where("model = ?", modelName).Delete(&model.BeanEmbedding{}).Error
}
