package event

import (
	"context"
	"lankaride/config"
	"lankaride/infras/kafka"
	notifService "lankaride/internal/domains/notification/service"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Worker consumes the notification topic and hands every event to the dispatcher.
type Worker struct {
	Config     *config.Config
	Kafka      kafka.Client
	Dispatcher notifService.Dispatcher
}

func New(cfg *config.Config, kafka kafka.Client, dispatcher notifService.Dispatcher) *Worker {
	return &Worker{
		Config:     cfg,
		Kafka:      kafka,
		Dispatcher: dispatcher,
	}
}

// Run blocks until SIGINT or SIGTERM.
func (w *Worker) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Consume(ctx)

	if err := w.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	log.Info().Msg("Worker stopped.")
}

func (w *Worker) Consume(ctx context.Context) {
	topic := w.Config.Kafka.Topics.Notification

	log.Info().Str("topic", topic).Str("group", w.Config.Kafka.ConsumerGroup).Msg("Starting notification worker.")

	w.Kafka.Consume(ctx, w.Config.Kafka.ConsumerGroup, topic, w.Dispatcher.Handle)
}
