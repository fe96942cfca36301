package ollama

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/paperlens/backend/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// EmbeddingClient generates embeddings via locally-hosted Ollama models.
type EmbeddingClient struct {
	embeddingModel string
	timeoutMin     int

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	Client *api.Client
}

// NewEmbeddingClientParams contains configuration options for creating a new EmbeddingClient.
type NewEmbeddingClientParams struct {
	EmbeddingModel string

	BaseURL string
	ApiKey  string

	MaxConcurrentRequests int64
	TimeoutMin            int
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewEmbeddingClient creates an Ollama-backed embedding client. It connects
// to the Ollama server at the given BaseURL (or the default if empty).
func NewEmbeddingClient(params NewEmbeddingClientParams) (*EmbeddingClient, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: map[string]string{
				"Authorization": "Bearer " + params.ApiKey,
			},
			rt: http.DefaultTransport,
		},
	}

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

		baseURL:    u,
		apiKey:     params.ApiKey,
		httpClient: httpClient,

		Client: api.NewClient(u, httpClient),
	}, nil
}
