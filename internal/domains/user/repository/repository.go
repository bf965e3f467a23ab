package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	"lankaride/internal/domains/user/model"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	gRepo "lankaride/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CountByRole(ctx context.Context) (model.RoleCounts, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// roleCountsExpr counts every role plus the driver approval queue in one scan.
var roleCountsExpr = fmt.Sprintf(
	`COUNT(*) FILTER (WHERE %[1]s.%[2]s = '%[4]s') AS travelers,
	COUNT(*) FILTER (WHERE %[1]s.%[2]s = '%[5]s') AS drivers,
	COUNT(*) FILTER (WHERE %[1]s.%[2]s = '%[6]s') AS admins,
	COUNT(*) FILTER (WHERE %[1]s.%[2]s = '%[5]s' AND %[1]s.%[3]s = '%[7]s') AS pending_drivers`,
	model.TableName, model.FieldRole, model.FieldDriverStatus,
	constant.RoleGuest, constant.RoleDriver, constant.RoleAdmin, model.DriverStatusPending,
)

func (r *repositoryImpl) CountByRole(ctx context.Context) (counts model.RoleCounts, err error) {
	err = r.Aggregate(ctx, roleCountsExpr, gDto.FilterGroup{}, &counts)

	return counts, err
}
