package openai

import (
	"math"

	"github.com/paperlens/backend/pkg/ai"
)

// ResetMetrics clears all accumulated token and timing metrics to zero.
func (c *EmbeddingClient) ResetMetrics() {
	c.metricsLock.Lock()
	c.metrics = ai.ModelMetrics{}
	c.metricsLock.Unlock()
}

// GetMetrics returns the accumulated token usage and timing metrics since the last reset.
func (c *EmbeddingClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}

func (c *EmbeddingClient) modifyMetrics(inputTokens, totalTokens int, durationMs int64) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.InputTokens += inputTokens
	c.metrics.TotalTokens += totalTokens
	c.metrics.DurationMs += durationMs

	if c.metrics.DurationMs > 0 {
		tokensPerSecond := (float64(c.metrics.TotalTokens) * 1000.0) / float64(c.metrics.DurationMs)
		c.metrics.TokenPerSecond = float32(math.Round(tokensPerSecond*100) / 100)
	}
}
