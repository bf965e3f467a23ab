package health

import (
	"context"
	"lankaride/infras/postgres"
	"lankaride/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

type Handler struct {
	db    *postgres.Connection
	redis *goRedis.Client
}

func New(db *postgres.Connection, redis *goRedis.Client) Handler {
	return Handler{
		db:    db,
		redis: redis,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/health", handler.Check)
}

type Status struct {
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

// Check reports whether the backing stores answer
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status]
// @Failure 503 {object} response.Message
// @Router /v1/health [get]
func (handler *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	dbErr := handler.db.Write.PingContext(ctx)
	redisErr := handler.redis.Ping(ctx).Err()

	if dbErr != nil || redisErr != nil {
		log.Error().AnErr("postgres", dbErr).AnErr("redis", redisErr).Msg("health check failed")

		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, Status{Postgres: "up", Redis: "up"})
}
