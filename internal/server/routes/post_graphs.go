package routes

import (
	"errors"
	"net/http"

	"github.com/paperlens/backend/internal/server/middleware"
	"github.com/paperlens/backend/pkg/graph"
	"github.com/paperlens/backend/pkg/logger"
	paperstore "github.com/paperlens/backend/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

const (
	defaultDepth    = 2
	defaultMaxNodes = 30
)

// GenerateGraphHandler builds a relationship graph around a center paper.
func GenerateGraphHandler(c echo.Context) error {
	type generateGraphBody struct {
		PaperID  string `json:"paper_id" validate:"required"`
		Mode     string `json:"mode" validate:"required"`
		Depth    int    `json:"depth"`
		MaxNodes int    `json:"max_nodes"`
	}

	type generateGraphResponse struct {
		Success bool          `json:"success"`
		Data    *graph.Result `json:"data,omitempty"`
		Message string        `json:"message,omitempty"`
	}

	data := new(generateGraphBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, generateGraphResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, generateGraphResponse{
			Message: "Invalid request body",
		})
	}

	if data.Depth == 0 {
		data.Depth = defaultDepth
	}
	if data.MaxNodes == 0 {
		data.MaxNodes = defaultMaxNodes
	}
	if data.Depth < 1 || data.Depth > 3 {
		return c.JSON(http.StatusBadRequest, generateGraphResponse{
			Message: "depth must be between 1 and 3",
		})
	}
	if data.MaxNodes < 1 || data.MaxNodes > 100 {
		return c.JSON(http.StatusBadRequest, generateGraphResponse{
			Message: "max_nodes must be between 1 and 100",
		})
	}

	mode, err := graph.ParseMode(data.Mode)
	if err != nil {
		return c.JSON(http.StatusBadRequest, generateGraphResponse{
			Message: err.Error(),
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	builder := graph.NewBuilder(paperstore.NewPaperDBStore(conn))

	res, err := builder.Generate(ctx, data.PaperID, mode, data.Depth, data.MaxNodes)
	if err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			return c.JSON(http.StatusNotFound, generateGraphResponse{
				Message: notFound.Error(),
			})
		}
		var badMode *graph.UnsupportedModeError
		if errors.As(err, &badMode) {
			return c.JSON(http.StatusBadRequest, generateGraphResponse{
				Message: badMode.Error(),
			})
		}
		logger.Error("Failed to generate graph", "paper_id", data.PaperID, "mode", data.Mode, "err", err)
		return c.JSON(http.StatusInternalServerError, generateGraphResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, generateGraphResponse{
		Success: true,
		Data:    res,
	})
}
