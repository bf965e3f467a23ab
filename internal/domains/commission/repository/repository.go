package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	"lankaride/internal/domains/commission/model"
	gDto "lankaride/shared/dto"
	gRepo "lankaride/shared/repository"
)

type Discount interface {
	Insert(ctx context.Context, model model.Discount) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Discount, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Discount, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Discount]
}

func New(db *postgres.Connection, otel otel.Otel) Discount {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Discount](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
