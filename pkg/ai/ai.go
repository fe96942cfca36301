package ai

import "context"

// EmbeddingClient generates vector embeddings for paper abstracts and
// extracted knowledge texts. Implementations exist for OpenAI-compatible
// APIs and locally-hosted Ollama models.
type EmbeddingClient interface {
	// GenerateEmbedding creates an embedding for a single input. Empty or
	// whitespace-only input yields a zero vector instead of an API call.
	GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error)

	// GenerateEmbeddings creates embeddings for multiple inputs,
	// preserving input order.
	GenerateEmbeddings(ctx context.Context, inputs [][]byte) ([][]float32, error)

	// GetMetrics returns the token usage and timing accumulated since the
	// last reset.
	GetMetrics() ModelMetrics

	// ResetMetrics clears the accumulated metrics.
	ResetMetrics()
}

// ModelMetrics contains performance metrics from embedding operations.
type ModelMetrics struct {
	InputTokens    int     `json:"input_tokens"`
	OutputTokens   int     `json:"output_tokens"`
	TotalTokens    int     `json:"total_tokens"`
	DurationMs     int64   `json:"duration_ms"`
	TokenPerSecond float32 `json:"tokens_per_second"`
}
