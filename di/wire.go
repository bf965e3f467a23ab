//go:build wireinject
// +build wireinject

package di

import (
	"lankaride/config"
	"lankaride/infras/jwt"
	"lankaride/infras/kafka"
	"lankaride/infras/mailer"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	"lankaride/infras/redis"
	"lankaride/infras/s3"
	"lankaride/infras/websocket"
	"lankaride/permissions"
	"lankaride/shared/cache"
	"lankaride/transport/event"
	"lankaride/transport/http"
	"lankaride/transport/http/middleware"
	"lankaride/transport/http/router"

	"github.com/google/wire"

	authService "lankaride/internal/domains/auth/service"
	availabilityRepository "lankaride/internal/domains/availability/repository"
	availabilityService "lankaride/internal/domains/availability/service"
	bookingRepository "lankaride/internal/domains/booking/repository"
	bookingService "lankaride/internal/domains/booking/service"
	briefRepository "lankaride/internal/domains/brief/repository"
	briefService "lankaride/internal/domains/brief/service"
	chatRepository "lankaride/internal/domains/chat/repository"
	chatService "lankaride/internal/domains/chat/service"
	commissionRepository "lankaride/internal/domains/commission/repository"
	commissionService "lankaride/internal/domains/commission/service"
	notifService "lankaride/internal/domains/notification/service"
	reviewRepository "lankaride/internal/domains/review/repository"
	reviewService "lankaride/internal/domains/review/service"
	supportRepository "lankaride/internal/domains/support/repository"
	supportService "lankaride/internal/domains/support/service"
	userRepository "lankaride/internal/domains/user/repository"
	userService "lankaride/internal/domains/user/service"
	vehicleRepository "lankaride/internal/domains/vehicle/repository"
	vehicleService "lankaride/internal/domains/vehicle/service"

	adminHandler "lankaride/internal/handlers/admin"
	authHandler "lankaride/internal/handlers/auth"
	bookingHandler "lankaride/internal/handlers/booking"
	briefHandler "lankaride/internal/handlers/brief"
	chatHandler "lankaride/internal/handlers/chat"
	driverHandler "lankaride/internal/handlers/driver"
	driversHandler "lankaride/internal/handlers/drivers"
	healthHandler "lankaride/internal/handlers/health"
	meHandler "lankaride/internal/handlers/me"
	supportHandler "lankaride/internal/handlers/support"
	vehicleHandler "lankaride/internal/handlers/vehicle"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	websocket.NewHub,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notificationDomain = wire.NewSet(
	notifService.NewNotifier,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var vehicleDomain = wire.NewSet(
	vehicleRepository.New,
	vehicleService.New,
	availabilityRepository.New,
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	commissionRepository.New,
	commissionService.New,
	bookingRepository.New,
	bookingService.New,
	reviewRepository.New,
	reviewService.New,
)

var conversationDomain = wire.NewSet(
	chatRepository.NewConversation,
	chatRepository.NewMessage,
	chatService.New,
	briefRepository.New,
	briefService.New,
)

var supportDomain = wire.NewSet(
	supportRepository.New,
	supportService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	userDomain,
	vehicleDomain,
	bookingDomain,
	conversationDomain,
	supportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	meHandler.New,
	vehicleHandler.New,
	driversHandler.New,
	driverHandler.New,
	bookingHandler.New,
	briefHandler.New,
	chatHandler.New,
	supportHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *event.Worker {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		mailer.New,
		notifService.NewDispatcher,
		event.New,
	)

	return &event.Worker{}
}
