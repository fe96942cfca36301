package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"
)

// App bundles the shared clients every handler needs.
type App struct {
	DBConn *pgxpool.Pool
	Queue  *amqp091.Channel
	S3     *s3.Client
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(
	db *pgxpool.Pool,
	queue *amqp091.Channel,
	s3 *s3.Client,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				DBConn: db,
				Queue:  queue,
				S3:     s3,
			}
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
