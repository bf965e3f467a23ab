package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	availabilityModel "lankaride/internal/domains/availability/model"
	bookingModel "lankaride/internal/domains/booking/model"
	"lankaride/internal/domains/vehicle/model"
	gDto "lankaride/shared/dto"
	gRepo "lankaride/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type Vehicle interface {
	Insert(ctx context.Context, model model.Vehicle) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Vehicle, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Vehicle, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// LockTx reads the vehicle with a row lock held until the transaction ends.
	LockTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Vehicle, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Vehicle]
}

func New(db *postgres.Connection, otel otel.Otel) Vehicle {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Vehicle](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// availableQuery excludes vehicles holding an active booking or an unavailable window inside the range.
const availableQuery = `NOT EXISTS (
	SELECT 1 FROM bookings b
	WHERE b.vehicle_id = vehicles.id
	AND b.status IN (:search_status_0, :search_status_1)
	AND b.start_date <= :search_end AND :search_start <= b.end_date
) AND NOT EXISTS (
	SELECT 1 FROM availabilities a
	WHERE a.vehicle_id = vehicles.id
	AND a.status = :search_unavailable
	AND a.start_date <= :search_end AND :search_start <= a.end_date
)`

// FilterAvailable matches vehicles free for every day of [start, end].
func FilterAvailable(start, end time.Time) gDto.Filter {
	return gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value:    availableQuery,
		Args: map[string]any{
			"search_status_0":    bookingModel.ActiveStatuses[0],
			"search_status_1":    bookingModel.ActiveStatuses[1],
			"search_start":       start,
			"search_end":         end,
			"search_unavailable": availabilityModel.StatusUnavailable,
		},
	}
}
