package event_test

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lankaride/config"
	kafkaInfra "lankaride/infras/kafka"
	kafkaMocks "lankaride/infras/kafka/mocks"
	notifMocks "lankaride/internal/domains/notification/mocks"
	"lankaride/transport/event"
)

func TestWorker_Consume(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := kafkaMocks.NewMockClient(ctrl)
	dispatcher := notifMocks.NewMockDispatcher(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "lankaride-worker"
	cfg.Kafka.Topics.Notification = "lankaride.notifications"

	msg := kafka.Message{Key: []byte("booking-1"), Value: []byte(`{"type":"booking_created"}`)}

	dispatcher.EXPECT().Handle(gomock.Any(), msg).Return(nil)
	client.EXPECT().Consume(gomock.Any(), "lankaride-worker", "lankaride.notifications", gomock.Any()).
		Do(func(ctx context.Context, _, _ string, handler kafkaInfra.Handler) {
			require.NoError(t, handler(ctx, msg))
		})

	worker := event.New(cfg, client, dispatcher)
	worker.Consume(context.Background())

	assert.Equal(t, cfg, worker.Config)
}
