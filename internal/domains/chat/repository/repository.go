package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	"lankaride/internal/domains/chat/model"
	gDto "lankaride/shared/dto"
	gRepo "lankaride/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Conversation interface {
	Insert(ctx context.Context, model model.Conversation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Conversation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Conversation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Aggregate(ctx context.Context, expr string, filter gDto.FilterGroup, dest any) error
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Increment(ctx context.Context, sqltx *sqlx.Tx, field string, delta int, filter gDto.FilterGroup) error
}

type Message interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Message) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Message, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Message, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	UpdateCountTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type conversationImpl struct {
	gRepo.Repository[model.Conversation]
}

type messageImpl struct {
	gRepo.Repository[model.Message]
}

func NewConversation(db *postgres.Connection, otel otel.Otel) Conversation {
	return &conversationImpl{
		Repository: gRepo.NewRepository[model.Conversation](model.ConversationEntityName, model.ConversationTableName, model.FieldID, db, otel),
	}
}

func NewMessage(db *postgres.Connection, otel otel.Otel) Message {
	return &messageImpl{
		Repository: gRepo.NewRepository[model.Message](model.MessageEntityName, model.MessageTableName, model.FieldID, db, otel),
	}
}

// FilterOfferIn matches the offer message only while it is in status.
func FilterOfferIn(messageID, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: messageID, Operator: gDto.FilterOperatorEq, Table: model.MessageTableName},
			gDto.Filter{Field: model.FieldType, Value: model.MessageTypeOffer, Operator: gDto.FilterOperatorEq, Table: model.MessageTableName},
			gDto.Filter{Field: model.FieldOfferStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.MessageTableName},
		},
	}
}
