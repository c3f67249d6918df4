package main

import (
	"github.com/cognigraph/console/internal/server"
	"github.com/cognigraph/console/internal/util"
	"github.com/cognigraph/console/pkg/logger"
	"github.com/cognigraph/console/pkg/logger/console"
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
