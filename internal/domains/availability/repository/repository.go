package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	"lankaride/internal/domains/availability/model"
	"lankaride/shared"
	gDto "lankaride/shared/dto"
	gRepo "lankaride/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type Availability interface {
	Insert(ctx context.Context, model model.Availability) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Availability, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Availability, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Availability]
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Availability](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// FilterBlocking matches unavailable windows of the vehicle sharing at least one day with [start, end].
func FilterBlocking(vehicleID string, start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			shared.FilterEq(model.TableName,
				model.FieldVehicleID, vehicleID,
				model.FieldStatus, model.StatusUnavailable,
			),
			shared.FilterOverlap(model.TableName, model.FieldStartDate, model.FieldEndDate, start, end),
		},
	}
}
