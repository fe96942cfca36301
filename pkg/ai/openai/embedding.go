package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paperlens/backend/internal/util"

	"github.com/openai/openai-go/v3"
)

const defaultDimensions = 1536

// GenerateEmbedding creates a vector embedding for the given input text
// using the configured embedding model.
//
// The input is provided as a byte slice and will be converted to a string
// before being sent to the embedding model.
func (c *EmbeddingClient) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	res, err := c.GenerateEmbeddings(ctx, [][]byte{input})
	if err != nil {
		return nil, err
	}
	if len(res) != 1 {
		return nil, fmt.Errorf("unexpected embedding result size: got %d want 1", len(res))
	}
	return res[0], nil
}

// GenerateEmbeddings creates embeddings for multiple inputs in a single
// request. Empty inputs are replaced by zero vectors without being sent to
// the model.
func (c *EmbeddingClient) GenerateEmbeddings(ctx context.Context, inputs [][]byte) ([][]float32, error) {
	dim := int(util.GetEnvNumeric("AI_EMBED_DIM", defaultDimensions))
	if len(inputs) == 0 {
		return nil, nil
	}

	idxMap, stringsIn, out := normalizeEmbeddingInputs(inputs, dim)
	if len(stringsIn) == 0 {
		return out, nil
	}

	stringsOut, err := c.generateEmbeddingsForStrings(ctx, stringsIn, dim)
	if err != nil {
		return nil, err
	}
	if len(stringsOut) != len(stringsIn) {
		return nil, fmt.Errorf("embedding result size mismatch: got %d want %d", len(stringsOut), len(stringsIn))
	}
	for i := range stringsOut {
		out[idxMap[i]] = stringsOut[i]
	}
	return out, nil
}

func normalizeEmbeddingInputs(inputs [][]byte, dim int) (idxMap []int, stringsIn []string, out [][]float32) {
	idxMap = make([]int, 0, len(inputs))
	stringsIn = make([]string, 0, len(inputs))
	out = make([][]float32, len(inputs))
	for i, in := range inputs {
		if len(strings.TrimSpace(string(in))) == 0 {
			out[i] = make([]float32, dim)
			continue
		}
		idxMap = append(idxMap, i)
		stringsIn = append(stringsIn, string(in))
	}
	return idxMap, stringsIn, out
}

func (c *EmbeddingClient) generateEmbeddingsForStrings(ctx context.Context, inputs []string, dim int) ([][]float32, error) {
	rCtx, cancel := context.WithTimeout(ctx, time.Minute*time.Duration(c.timeoutMin))
	defer cancel()

	body := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: inputs},
		Model: c.embeddingModel,
	}

	if err := c.reqLock.Acquire(rCtx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	start := time.Now()
	response, err := c.Client.Embeddings.New(rCtx, body)
	if err != nil {
		return nil, err
	}

	c.modifyMetrics(
		int(response.Usage.PromptTokens),
		int(response.Usage.TotalTokens),
		time.Since(start).Milliseconds(),
	)

	if len(response.Data) != len(inputs) {
		return nil, fmt.Errorf("embedding response size mismatch: got %d want %d", len(response.Data), len(inputs))
	}

	out := make([][]float32, len(inputs))
	for _, embedding := range response.Data {
		dataIdx := int(embedding.Index)
		if dataIdx < 0 || dataIdx >= len(inputs) {
			return nil, fmt.Errorf("embedding index out of range: %d", embedding.Index)
		}
		vec := make([]float32, 0, dim)
		for _, v := range embedding.Embedding {
			if len(vec) >= dim {
				break
			}
			vec = append(vec, float32(v))
		}
		if len(vec) < dim {
			padded := make([]float32, dim)
			copy(padded, vec)
			vec = padded
		}
		out[dataIdx] = vec
	}
	for i := range out {
		if out[i] == nil {
			return nil, fmt.Errorf("missing embedding for index %d", i)
		}
	}
	return out, nil
}
