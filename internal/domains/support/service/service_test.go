package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lankaride/config"
	"lankaride/infras/otel/mocks"
	notifMocks "lankaride/internal/domains/notification/mocks"
	notifModel "lankaride/internal/domains/notification/model"
	supportMocks "lankaride/internal/domains/support/mocks"
	"lankaride/internal/domains/support/model"
	"lankaride/internal/domains/support/model/dto"
	"lankaride/internal/domains/support/service"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
)

type fixture struct {
	repo     *supportMocks.MockTicket
	notifier *notifMocks.MockNotifier
	svc      service.Support
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     supportMocks.NewMockTicket(ctrl),
		notifier: notifMocks.NewMockNotifier(ctrl),
	}

	cfg := &config.Config{}
	cfg.App.Name = "lankaride"
	cfg.App.AdminEmail = "admin@lankaride.lk"

	f.svc = service.New(f.repo, f.notifier, cfg, mocks.NewOtel())

	return f
}

func TestSupportService_Create(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateTicketRequest{
		Name:    "Nimali",
		Email:   " Nimali@Example.com ",
		Subject: "Refund",
		Message: "My driver did not show up.",
	}

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "signed in sender notifies the admin",
			userID: "user-1",
			setupMock: func() {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, ticket model.Ticket) error {
						require.NotNil(t, ticket.UserID)
						assert.Equal(t, "user-1", *ticket.UserID)
						assert.Equal(t, "nimali@example.com", ticket.Email)
						assert.Equal(t, model.StatusOpen, ticket.Status)

						return nil
					})
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...notifModel.Event) {
						assert.Equal(t, notifModel.TypeSupportTicket, events[0].Type)
						assert.Equal(t, "admin@lankaride.lk", events[0].RecipientEmail)
						assert.Equal(t, "Refund", events[0].Get(notifModel.DataSubject))
					})
			},
		},
		{
			name: "anonymous sender",
			setupMock: func() {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, ticket model.Ticket) error {
						assert.Nil(t, ticket.UserID)

						return nil
					})
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "database failure sends nothing",
			setupMock: func() {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(context.Background(), tt.userID, req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusOpen, res.Status)
		})
	}
}

func TestSupportService_Resolve(t *testing.T) {
	f := newFixture(t)

	t.Run("resolves", func(t *testing.T) {
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusResolved, fields[model.FieldStatus])

				return 1, nil
			})

		require.NoError(t, f.svc.Resolve(context.Background(), "admin-1", "ticket-1", dto.ResolveRequest{Note: "refunded"}))
	})

	t.Run("missing", func(t *testing.T) {
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		err := f.svc.Resolve(context.Background(), "admin-1", "ticket-1", dto.ResolveRequest{})
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestSupportService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Ticket{{ID: "t-1"}, {ID: "t-2"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 1}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Tickets, 2)
}

func TestSupportService_Resolve_TracesFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := supportMocks.NewMockTicket(ctrl)
	recorder := mocks.NewRecorder()

	svc := service.New(repo, notifMocks.NewMockNotifier(ctrl), &config.Config{}, recorder)

	repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

	err := svc.Resolve(context.Background(), "admin-1", "ticket-9", dto.ResolveRequest{})
	require.Error(t, err)

	assert.Equal(t, []string{"service.Resolve"}, recorder.Spans)
	require.Len(t, recorder.Errors, 1)
	assert.Equal(t, 404, failure.GetCode(recorder.Errors[0]))
}
