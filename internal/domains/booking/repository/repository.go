package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	"lankaride/internal/domains/booking/model"
	"lankaride/shared"
	gDto "lankaride/shared/dto"
	gRepo "lankaride/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Aggregate(ctx context.Context, expr string, filter gDto.FilterGroup, dest any) error
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	UpdateCountTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// FilterActive matches bookings of the vehicle still holding their dates.
func FilterActive(vehicleID string) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldVehicleID, vehicleID),
		gDto.In(model.TableName, model.FieldStatus, model.ActiveStatuses),
	)
}

// FilterActiveOverlap matches active bookings of the vehicle sharing at least one day with [start, end].
func FilterActiveOverlap(vehicleID string, start, end time.Time) gDto.FilterGroup {
	return gDto.And(
		FilterActive(vehicleID),
		shared.FilterOverlap(model.TableName, model.FieldStartDate, model.FieldEndDate, start, end),
	)
}
