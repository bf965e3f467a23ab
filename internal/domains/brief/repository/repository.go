package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	"lankaride/internal/domains/brief/model"
	gDto "lankaride/shared/dto"
	gRepo "lankaride/shared/repository"
)

type Brief interface {
	Insert(ctx context.Context, model model.Brief) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Brief, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Brief, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Brief]
}

func New(db *postgres.Connection, otel otel.Otel) Brief {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Brief](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
