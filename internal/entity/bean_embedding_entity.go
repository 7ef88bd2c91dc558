package entity

import "time"

// BeanEmbedding is a cached description vector. ContentHash identifies the
// (model, description) pair that produced Value.
type BeanEmbedding struct {
	ContentHash string
	Model       string
	Content     string
	Value       []float32
	CreatedAt   time.Time
}
