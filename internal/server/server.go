package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paperlens/backend/internal/db"
	"github.com/paperlens/backend/internal/queue"
	mid "github.com/paperlens/backend/internal/server/middleware"
	"github.com/paperlens/backend/internal/storage"
	"github.com/paperlens/backend/internal/util"
	"github.com/paperlens/backend/pkg/logger"

	"github.com/go-playground/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func runMigrations(databaseURL string) {
	migrationsPath := util.GetEnvString("MIGRATIONS_PATH", "file://migrations")
	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		logger.Fatal("Failed to open migrations", "err", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL := util.GetEnv("DATABASE_URL")
	runMigrations(databaseURL)

	conn, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}

	if err := queue.SetupQueues(ch, []string{queue.IngestQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	s3 := storage.NewS3Client(ctx)

	e.Use(mid.AppContextMiddleware(conn, ch, s3))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
