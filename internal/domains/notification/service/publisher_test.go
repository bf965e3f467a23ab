package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lankaride/config"
	"lankaride/infras/kafka"
	kafkaMocks "lankaride/infras/kafka/mocks"
	"lankaride/infras/otel/mocks"
	"lankaride/internal/domains/notification/model"
	"lankaride/internal/domains/notification/service"
)

func TestNotifier_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Notification = "notifications"

	svc := service.NewNotifier(cfg, mockKafka, mocks.NewOtel())

	event := model.Event{
		Type:           model.TypePasswordReset,
		RecipientEmail: "nimal@example.com",
		RecipientName:  "Nimal",
	}

	tests := []struct {
		name      string
		events    []model.Event
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "publishes keyed by recipient",
			events: []model.Event{event},
			setupMock: func() {
				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "notifications", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						assert.Len(t, messages, 1)
						assert.Equal(t, "nimal@example.com", messages[0].Key)

						published, ok := messages[0].Value.(model.Event)
						assert.True(t, ok)
						assert.False(t, published.OccurredAt.IsZero())

						return nil
					})
			},
		},
		{
			name:      "skips events without recipient",
			events:    []model.Event{{Type: model.TypeDriverStatus}},
			setupMock: func() {},
		},
		{
			name:   "broker failure",
			events: []model.Event{event},
			setupMock: func() {
				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "notifications", gomock.Any()).
					Return(errors.New("broker down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Publish(context.Background(), tt.events...)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotifier_Notify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Notification = "notifications"

	svc := service.NewNotifier(cfg, mockKafka, mocks.NewOtel())

	done := make(chan struct{})

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "notifications", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ ...kafka.Message) error {
			close(done)

			return errors.New("broker down")
		})

	ctx, cancel := context.WithCancel(context.Background())
	svc.Notify(ctx, model.Event{Type: model.TypeBookingConfirmed, RecipientEmail: "kamal@example.com"})
	cancel()

	<-done
}
