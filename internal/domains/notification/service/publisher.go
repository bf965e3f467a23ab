package service

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lankaride/config"
	"lankaride/infras/kafka"
	"lankaride/infras/otel"
	"lankaride/internal/domains/notification/model"
	"lankaride/shared/constant"
	"lankaride/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Notifier interface {
	// Notify publishes in the background. Failures are logged and never reach the caller.
	Notify(ctx context.Context, events ...model.Event)
	Publish(ctx context.Context, events ...model.Event) error
}

type publisherImpl struct {
	cfg   *config.Config
	kafka kafka.Client
	otel  otel.Otel
}

func NewNotifier(cfg *config.Config, kafka kafka.Client, otel otel.Otel) Notifier {
	return &publisherImpl{
		cfg:   cfg,
		kafka: kafka,
		otel:  otel,
	}
}

func (p *publisherImpl) Notify(ctx context.Context, events ...model.Event) {
	if len(events) == 0 {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := p.Publish(c, events...); err != nil {
			log.Error().Err(err).Int("events", len(events)).Msg("failed to publish notifications")
		}
	}()
}

func (p *publisherImpl) Publish(ctx context.Context, events ...model.Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	messages := make([]kafka.Message, 0, len(events))

	for _, event := range events {
		if event.RecipientEmail == constant.Empty {
			log.Warn().Str("type", event.Type).Msg("skipping notification without recipient")

			continue
		}

		if event.OccurredAt.IsZero() {
			event.OccurredAt = timezone.Now()
		}

		messages = append(messages, kafka.Message{Key: event.RecipientEmail, Value: event})
	}

	if len(messages) == 0 {
		return nil
	}

	if err = p.kafka.SendMessages(ctx, p.cfg.Kafka.Topics.Notification, messages...); err != nil {
		return fmt.Errorf("failed to send notification events: %w", err)
	}

	return nil
}
