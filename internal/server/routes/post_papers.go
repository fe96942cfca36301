package routes

import (
	"encoding/json"
	"net/http"

	"github.com/paperlens/backend/internal/queue"
	"github.com/paperlens/backend/internal/server/middleware"
	"github.com/paperlens/backend/pkg/common"
	"github.com/paperlens/backend/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ImportPapersHandler accepts a batch of paper records and hands it to the
// ingest worker. The response carries a correlation id so clients can match
// worker logs to their batch.
func ImportPapersHandler(c echo.Context) error {
	type importPapersBody struct {
		Papers []common.PaperImport `json:"papers" validate:"required,min=1,dive"`
	}

	type importPapersData struct {
		CorrelationID string `json:"correlation_id"`
		Papers        int    `json:"papers"`
	}

	type importPapersResponse struct {
		Success bool              `json:"success"`
		Data    *importPapersData `json:"data,omitempty"`
		Message string            `json:"message,omitempty"`
	}

	data := new(importPapersBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, importPapersResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, importPapersResponse{
			Message: "Invalid request body",
		})
	}

	correlationID, err := gonanoid.New()
	if err != nil {
		logger.Error("Failed to generate correlation id", "err", err)
		return c.JSON(http.StatusInternalServerError, importPapersResponse{
			Message: "Internal server error",
		})
	}

	msg := queue.IngestMsg{
		CorrelationID: correlationID,
		Papers:        data.Papers,
	}
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal ingest message", "err", err)
		return c.JSON(http.StatusInternalServerError, importPapersResponse{
			Message: "Internal server error",
		})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.IngestQueue, msgBytes); err != nil {
		logger.Error("Failed to publish ingest message", "correlation_id", correlationID, "err", err)
		return c.JSON(http.StatusInternalServerError, importPapersResponse{
			Message: "Internal server error",
		})
	}

	logger.Info("Queued paper import", "correlation_id", correlationID, "papers", len(data.Papers))

	return c.JSON(http.StatusAccepted, importPapersResponse{
		Success: true,
		Data: &importPapersData{
			CorrelationID: correlationID,
			Papers:        len(data.Papers),
		},
	})
}
