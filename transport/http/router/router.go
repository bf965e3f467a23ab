package router

import (
	"lankaride/config"
	"lankaride/internal/handlers/admin"
	"lankaride/internal/handlers/auth"
	"lankaride/internal/handlers/booking"
	"lankaride/internal/handlers/brief"
	"lankaride/internal/handlers/chat"
	"lankaride/internal/handlers/driver"
	"lankaride/internal/handlers/drivers"
	"lankaride/internal/handlers/health"
	"lankaride/internal/handlers/me"
	"lankaride/internal/handlers/support"
	"lankaride/internal/handlers/vehicle"
	"lankaride/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "lankaride/docs" // swagger spec
)

type DomainHandlers struct {
	Health  health.Handler
	Auth    auth.Handler
	Me      me.Handler
	Vehicle vehicle.Handler
	Drivers drivers.Handler
	Driver  driver.Handler
	Booking booking.Handler
	Brief   brief.Handler
	Chat    chat.Handler
	Support support.Handler
	Admin   admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Config         *config.Config
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)

	if corsConfig := r.Config.App.CORS; corsConfig.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsConfig.AllowedOrigins,
			AllowedMethods:   corsConfig.AllowedMethods,
			AllowedHeaders:   corsConfig.AllowedHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAgeSeconds,
		}))
	}

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(api chi.Router) {
		api.Use(r.App.Tracing)
		api.Use(r.App.RateLimit())
		api.Use(r.AuthRole.APIKey)
		api.Use(r.AuthRole.Auth)
		api.Use(r.AuthRole.RBAC)

		api.Route("/v1", func(routerGroup chi.Router) {
			r.DomainHandlers.Health.Router(routerGroup)
			r.DomainHandlers.Auth.Router(routerGroup)
			r.DomainHandlers.Me.Router(routerGroup)
			r.DomainHandlers.Vehicle.Router(routerGroup)
			r.DomainHandlers.Drivers.Router(routerGroup)
			r.DomainHandlers.Driver.Router(routerGroup)
			r.DomainHandlers.Booking.Router(routerGroup)
			r.DomainHandlers.Brief.Router(routerGroup)
			r.DomainHandlers.Chat.Router(routerGroup)
			r.DomainHandlers.Support.Router(routerGroup)
			r.DomainHandlers.Admin.Router(routerGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, cfg *config.Config, app middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Config:         cfg,
		App:            app,
		AuthRole:       authRole,
	}
}
