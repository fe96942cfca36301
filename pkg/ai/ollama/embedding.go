package ollama

import (
	"context"
	"strings"
	"time"

	"github.com/paperlens/backend/internal/util"

	"github.com/ollama/ollama/api"
)

const defaultDimensions = 1536

// GenerateEmbedding creates a vector embedding for the given input text
// using the configured embedding model on Ollama. Empty input yields a zero
// vector without an API call.
func (c *EmbeddingClient) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	dim := int(util.GetEnvNumeric("AI_EMBED_DIM", defaultDimensions))
	if len(strings.TrimSpace(string(input))) == 0 {
		return make([]float32, dim), nil
	}

	rCtx, cancel := context.WithTimeout(ctx, time.Minute*time.Duration(c.timeoutMin))
	defer cancel()

	req := &api.EmbedRequest{
		Model: c.embeddingModel,
		Input: string(input),
	}

	if err := c.reqLock.Acquire(rCtx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	res, err := c.Client.Embed(rCtx, req)
	if err != nil {
		return nil, err
	}

	c.modifyMetrics(res.PromptEvalCount, res.PromptEvalCount, res.TotalDuration.Milliseconds())

	out := make([]float32, 0, dim)
	for _, v := range res.Embeddings {
		for _, val := range v {
			if len(out) >= dim {
				break
			}
			out = append(out, float32(val))
		}
	}
	if len(out) < dim {
		padded := make([]float32, dim)
		copy(padded, out)
		out = padded
	}
	return out, nil
}

// GenerateEmbeddings creates embeddings for multiple inputs, one request per
// input. The client's semaphore bounds actual parallelism, so inputs are
// simply processed in order.
func (c *EmbeddingClient) GenerateEmbeddings(ctx context.Context, inputs [][]byte) ([][]float32, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(inputs))
	for i, in := range inputs {
		vec, err := c.GenerateEmbedding(ctx, in)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}
