package main

import (
	"github.com/paperlens/backend/internal/server"
	"github.com/paperlens/backend/internal/util"
	"github.com/paperlens/backend/pkg/logger"
	"github.com/paperlens/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
