package embedding

import "context"

// TaskType hints how the vector will be used; providers that ignore it
// still accept it.
type TaskType string

const (
	TaskRetrievalDocument TaskType = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    TaskType = "RETRIEVAL_QUERY"
	TaskClassification    TaskType = "CLASSIFICATION"
)

// EmbeddingProvider defines the interface for generating text embeddings.
// Returned vectors are unit length.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType TaskType) ([]float32, error)
	Model() string
}
