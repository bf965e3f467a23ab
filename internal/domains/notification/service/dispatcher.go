package service

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=../mocks/dispatcher_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lankaride/infras/kafka"
	"lankaride/infras/mailer"
	"lankaride/infras/otel"
	"lankaride/internal/domains/notification/model"
	"lankaride/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Dispatcher interface {
	// Handle renders one notification event and mails it. Malformed or unknown events are
	// dropped with a log line; only delivery failures are returned so the consumer retries.
	Handle(ctx context.Context, message kafkaGo.Message) error
}

type dispatcherImpl struct {
	mailer mailer.Mailer
	otel   otel.Otel
}

func NewDispatcher(mailer mailer.Mailer, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		mailer: mailer,
		otel:   otel,
	}
}

func (d *dispatcherImpl) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[model.Event](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("dropping malformed notification")

		return nil
	}

	subject, body, ok, err := render(event)
	if !ok {
		log.Warn().Str("type", event.Type).Msg("dropping notification with unknown type")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("dropping notification that failed to render")

		return nil
	}

	if err = d.mailer.Send(ctx, event.RecipientEmail, subject, body); err != nil {
		return fmt.Errorf("failed to mail %s notification: %w", event.Type, err)
	}

	log.Info().Str("type", event.Type).Str("to", event.RecipientEmail).Msg("notification sent")

	return nil
}
