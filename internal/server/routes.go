package server

import (
	"github.com/paperlens/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Graph routes
	apiRoutes.POST("/graph/generate", routes.GenerateGraphHandler)
	apiRoutes.GET("/graph/modes", routes.GetGraphModesHandler)
	apiRoutes.GET("/graph/papers/:id/summary", routes.GetPaperSummaryHandler)

	// Paper routes
	apiRoutes.GET("/papers/:id", routes.GetPaperHandler)
	apiRoutes.GET("/papers/:id/source", routes.GetPaperSourceHandler)
	apiRoutes.POST("/papers/import", routes.ImportPapersHandler)
}
