package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mailerMocks "lankaride/infras/mailer/mocks"
	"lankaride/infras/otel/mocks"
	"lankaride/internal/domains/notification/model"
	"lankaride/internal/domains/notification/service"
)

func message(t *testing.T, event model.Event) kafkaGo.Message {
	t.Helper()

	raw, err := json.Marshal(event)
	assert.NoError(t, err)

	return kafkaGo.Message{Key: []byte(event.RecipientEmail), Value: raw}
}

func TestDispatcher_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMailer := mailerMocks.NewMockMailer(ctrl)

	svc := service.NewDispatcher(mockMailer, mocks.NewOtel())

	verification := model.Event{
		Type:           model.TypeEmailVerification,
		RecipientEmail: "nimal@example.com",
		RecipientName:  "Nimal",
		Data:           map[string]string{model.DataLink: "https://lankaride.lk/verify-email?token=abc"},
	}

	rejected := model.Event{
		Type:           model.TypeDriverStatus,
		RecipientEmail: "kamal@example.com",
		RecipientName:  "Kamal",
		Data:           map[string]string{model.DataStatus: "rejected", model.DataReason: "licence is blurry"},
	}

	tests := []struct {
		name      string
		msg       kafkaGo.Message
		setupMock func()
		wantErr   bool
	}{
		{
			name: "renders verification link",
			msg:  message(t, verification),
			setupMock: func() {
				mockMailer.EXPECT().
					Send(gomock.Any(), "nimal@example.com", "Verify your LankaRide email", gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _, body string) error {
						assert.Contains(t, body, "Hi Nimal")
						assert.Contains(t, body, "https://lankaride.lk/verify-email?token=abc")

						return nil
					})
			},
		},
		{
			name: "renders status with reason",
			msg:  message(t, rejected),
			setupMock: func() {
				mockMailer.EXPECT().
					Send(gomock.Any(), "kamal@example.com", "Your driver profile was rejected", gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _, body string) error {
						assert.Contains(t, body, "Reason: licence is blurry")

						return nil
					})
			},
		},
		{
			name:      "drops unknown type",
			msg:       message(t, model.Event{Type: "unknown", RecipientEmail: "a@b.lk"}),
			setupMock: func() {},
		},
		{
			name:      "drops malformed payload",
			msg:       kafkaGo.Message{Value: []byte("{not json")},
			setupMock: func() {},
		},
		{
			name: "returns delivery failure for retry",
			msg:  message(t, verification),
			setupMock: func() {
				mockMailer.EXPECT().
					Send(gomock.Any(), "nimal@example.com", gomock.Any(), gomock.Any()).
					Return(errors.New("smtp unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Handle(context.Background(), tt.msg)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
