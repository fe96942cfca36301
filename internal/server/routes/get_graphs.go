package routes

import (
	"net/http"

	"github.com/paperlens/backend/internal/server/middleware"
	"github.com/paperlens/backend/pkg/common"
	"github.com/paperlens/backend/pkg/graph"
	"github.com/paperlens/backend/pkg/logger"
	paperstore "github.com/paperlens/backend/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

type graphMode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var graphModeCatalog = map[graph.Mode]graphMode{
	graph.ModeAuthor: {
		ID:          string(graph.ModeAuthor),
		Name:        "Shared authors",
		Description: "Papers written by the same authors",
		Color:       "#3498db",
	},
	graph.ModeCiting: {
		ID:          string(graph.ModeCiting),
		Name:        "Citations",
		Description: "Papers citing or cited by the center paper",
		Color:       "#2ecc71",
	},
	graph.ModeKeyKnowledge: {
		ID:          string(graph.ModeKeyKnowledge),
		Name:        "Key knowledge",
		Description: "Papers sharing extracted knowledge concepts",
		Color:       "#f39c12",
	},
	graph.ModeSimilar: {
		ID:          string(graph.ModeSimilar),
		Name:        "Similar content",
		Description: "Papers with similar content, topic and position",
		Color:       "#1abc9c",
	},
}

// recommendModes lists the modes that have at least one candidate around
// the paper. similar is always offered when the paper has an embedding.
func recommendModes(s *common.RelationSummary) []string {
	out := make([]string, 0, 4)
	if s.AuthorNeighborCount > 0 {
		out = append(out, string(graph.ModeAuthor))
	}
	if s.CitingCount > 0 || s.CitedCount > 0 {
		out = append(out, string(graph.ModeCiting))
	}
	if s.KeyKnowledgeCount > 0 {
		out = append(out, string(graph.ModeKeyKnowledge))
	}
	if s.HasEmbedding {
		out = append(out, string(graph.ModeSimilar))
	}
	return out
}

// GetGraphModesHandler lists the supported graph modes.
func GetGraphModesHandler(c echo.Context) error {
	type modesResponse struct {
		Success bool        `json:"success"`
		Data    []graphMode `json:"data"`
	}

	modes := make([]graphMode, 0, len(graphModeCatalog))
	for _, m := range graph.Modes() {
		modes = append(modes, graphModeCatalog[m])
	}

	return c.JSON(http.StatusOK, modesResponse{
		Success: true,
		Data:    modes,
	})
}

// GetPaperSummaryHandler reports how many relation candidates exist around a
// paper, so a client can tell which graph modes are worth offering.
func GetPaperSummaryHandler(c echo.Context) error {
	type summaryData struct {
		Paper            *common.Paper           `json:"paper"`
		Summary          *common.RelationSummary `json:"summary"`
		RecommendedModes []string                `json:"recommended_modes"`
	}

	type summaryResponse struct {
		Success bool         `json:"success"`
		Data    *summaryData `json:"data,omitempty"`
		Message string       `json:"message,omitempty"`
	}

	paperID := c.Param("id")
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	store := paperstore.NewPaperDBStore(conn)

	paper, err := store.GetPaper(ctx, paperID)
	if err != nil {
		logger.Error("Failed to load paper", "paper_id", paperID, "err", err)
		return c.JSON(http.StatusInternalServerError, summaryResponse{
			Message: "Internal server error",
		})
	}
	if paper == nil {
		return c.JSON(http.StatusNotFound, summaryResponse{
			Message: "Paper not found",
		})
	}

	summary, err := store.RelationSummary(ctx, paperID)
	if err != nil {
		logger.Error("Failed to load relation summary", "paper_id", paperID, "err", err)
		return c.JSON(http.StatusInternalServerError, summaryResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, summaryResponse{
		Success: true,
		Data: &summaryData{
			Paper:            paper,
			Summary:          summary,
			RecommendedModes: recommendModes(summary),
		},
	})
}
