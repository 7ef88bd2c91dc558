package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type BeanEmbedding struct {
	ContentHash    string          `gorm:"type:char(64);primaryKey"`
	Model          string          `gorm:"type:varchar(128);not null;index"`
	Content        string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector"` // dimension depends on the embedding model
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (BeanEmbedding) TableName() string {
	return "bean_embeddings"
}
