package main

import (
	"lankaride/config"
	"lankaride/di"
	"lankaride/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLoggerFor(cfg)

	worker := di.InitializeWorker()
	worker.Run()
}
