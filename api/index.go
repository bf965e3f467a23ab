package handler

import (
	"lankaride/config"
	"lankaride/di"
	"lankaride/shared/logger"
	"net/http"
	"sync"

	lankaHTTP "lankaride/transport/http"
)

var (
	server *lankaHTTP.HTTP
	once   sync.Once
)

// Handler is the serverless entry point. The dependency graph is built on the first call.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLoggerFor(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
