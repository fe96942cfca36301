package openai

import (
	"sync"

	"github.com/paperlens/backend/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"
)

// EmbeddingClient generates embeddings through an OpenAI-compatible API.
// It should be created using NewEmbeddingClient.
type EmbeddingClient struct {
	embeddingModel string
	timeoutMin     int

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	Client *openai.Client
}

// NewEmbeddingClientParams defines the configuration for creating a new
// EmbeddingClient. BaseURL may be empty to use the official API endpoint.
type NewEmbeddingClientParams struct {
	EmbeddingModel string

	BaseURL string
	ApiKey  string

	MaxConcurrentRequests int64
	TimeoutMin            int
}

// NewEmbeddingClient creates an embedding client for an OpenAI-compatible
// endpoint.
//
// Example:
//
//	client := openai.NewEmbeddingClient(openai.NewEmbeddingClientParams{
//		EmbeddingModel:        "text-embedding-3-small",
//		ApiKey:                os.Getenv("OPENAI_API_KEY"),
//		MaxConcurrentRequests: 4,
//		TimeoutMin:            2,
//	})
func NewEmbeddingClient(params NewEmbeddingClientParams) *EmbeddingClient {
	options := []option.RequestOption{
		option.WithAPIKey(params.ApiKey),
	}
	if params.BaseURL != "" {
		options = append(options, option.WithBaseURL(params.BaseURL))
	}
	client := openai.NewClient(options...)

	timeoutMin := params.TimeoutMin
	if timeoutMin <= 0 {
		timeoutMin = 2
	}
	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &EmbeddingClient{
		embeddingModel: params.EmbeddingModel,
		timeoutMin:     timeoutMin,

		reqLock: semaphore.NewWeighted(maxConcurrent),

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		Client: &client,
	}
}
