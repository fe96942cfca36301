package routes

import (
	"net/http"

	"github.com/paperlens/backend/internal/server/middleware"
	"github.com/paperlens/backend/internal/storage"
	"github.com/paperlens/backend/pkg/common"
	"github.com/paperlens/backend/pkg/logger"
	paperstore "github.com/paperlens/backend/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

// GetPaperHandler returns one paper record.
func GetPaperHandler(c echo.Context) error {
	type paperResponse struct {
		Success bool          `json:"success"`
		Data    *common.Paper `json:"data,omitempty"`
		Message string        `json:"message,omitempty"`
	}

	paperID := c.Param("id")
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	paper, err := paperstore.NewPaperDBStore(conn).GetPaper(ctx, paperID)
	if err != nil {
		logger.Error("Failed to load paper", "paper_id", paperID, "err", err)
		return c.JSON(http.StatusInternalServerError, paperResponse{
			Message: "Internal server error",
		})
	}
	if paper == nil {
		return c.JSON(http.StatusNotFound, paperResponse{
			Message: "Paper not found",
		})
	}

	return c.JSON(http.StatusOK, paperResponse{
		Success: true,
		Data:    paper,
	})
}

// GetPaperSourceHandler returns a presigned download link for the stored
// source document of a paper.
func GetPaperSourceHandler(c echo.Context) error {
	type sourceData struct {
		URL string `json:"url"`
	}

	type sourceResponse struct {
		Success bool        `json:"success"`
		Data    *sourceData `json:"data,omitempty"`
		Message string      `json:"message,omitempty"`
	}

	paperID := c.Param("id")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	paper, err := paperstore.NewPaperDBStore(app.DBConn).GetPaper(ctx, paperID)
	if err != nil {
		logger.Error("Failed to load paper", "paper_id", paperID, "err", err)
		return c.JSON(http.StatusInternalServerError, sourceResponse{
			Message: "Internal server error",
		})
	}
	if paper == nil {
		return c.JSON(http.StatusNotFound, sourceResponse{
			Message: "Paper not found",
		})
	}
	if paper.SourceKey == "" {
		return c.JSON(http.StatusNotFound, sourceResponse{
			Message: "Paper has no source document",
		})
	}

	url, err := storage.GenerateDownloadLink(ctx, app.S3, paper.SourceKey)
	if err != nil {
		logger.Error("Failed to presign source link", "paper_id", paperID, "err", err)
		return c.JSON(http.StatusInternalServerError, sourceResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, sourceResponse{
		Success: true,
		Data:    &sourceData{URL: url},
	})
}
