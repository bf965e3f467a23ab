package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lankaride/infras/otel/mocks"
	briefMocks "lankaride/internal/domains/brief/mocks"
	"lankaride/internal/domains/brief/model"
	"lankaride/internal/domains/brief/model/dto"
	"lankaride/internal/domains/brief/service"
	chatMocks "lankaride/internal/domains/chat/mocks"
	chatModel "lankaride/internal/domains/chat/model"
	chatDto "lankaride/internal/domains/chat/model/dto"
	userMocks "lankaride/internal/domains/user/mocks"
	userModel "lankaride/internal/domains/user/model"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"lankaride/shared/timezone"
)

type fixture struct {
	repo     *briefMocks.MockBrief
	userRepo *userMocks.MockUser
	chat     *chatMocks.MockChatService
	svc      service.Brief
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     briefMocks.NewMockBrief(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
		chat:     chatMocks.NewMockChatService(ctrl),
	}

	f.svc = service.New(f.repo, f.userRepo, f.chat, mocks.NewOtel())

	return f
}

func daysFromNow(days int) string {
	return timezone.Today().AddDate(0, 0, days).Format(time.DateOnly)
}

func openBrief() model.Brief {
	start := timezone.Today().AddDate(0, 0, 10)

	return model.Brief{
		ID:          "brief-1",
		TravelerID:  "traveler-1",
		Title:       "Kandy to Ella",
		Pickup:      "Kandy",
		Destination: "Ella",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 3),
		Passengers:  4,
		Status:      model.StatusOpen,
	}
}

func approvedDriver() userModel.User {
	return userModel.User{
		ID:           "driver-1",
		Role:         constant.RoleDriver,
		Active:       true,
		DriverStatus: userModel.DriverStatusApproved,
	}
}

func TestBriefService_Create(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		req       dto.CreateBriefRequest
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "posts an open brief",
			req: dto.CreateBriefRequest{
				Title: " Hill country loop ", Pickup: "Colombo", Destination: "Nuwara Eliya",
				StartDate: daysFromNow(3), EndDate: daysFromNow(6), Passengers: 3,
			},
			setupMock: func() {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, brief model.Brief) error {
						assert.Equal(t, model.StatusOpen, brief.Status)
						assert.Equal(t, "Hill country loop", brief.Title)
						assert.Equal(t, "traveler-1", brief.TravelerID)

						return nil
					})
			},
		},
		{
			name: "end before start",
			req: dto.CreateBriefRequest{
				Title: "Trip", Pickup: "Colombo", Destination: "Galle",
				StartDate: daysFromNow(5), EndDate: daysFromNow(4), Passengers: 1,
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "start in the past",
			req: dto.CreateBriefRequest{
				Title: "Trip", Pickup: "Colombo", Destination: "Galle",
				StartDate: daysFromNow(-2), EndDate: daysFromNow(1), Passengers: 1,
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(context.Background(), "traveler-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 4, res.Days)
		})
	}
}

func TestBriefService_ListOpen(t *testing.T) {
	f := newFixture(t)

	passengers := 3

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Brief, error) {
			assert.Equal(t, model.TableName+"."+constant.FieldCreatedAt, params.SortBy)
			assert.Len(t, filter.Filters, 4)

			return []model.Brief{openBrief()}, nil
		})

	res, err := f.svc.ListOpen(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"},
		dto.ListRequest{VehicleType: "van", MinPassengers: &passengers})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Briefs, 1)
}

func TestBriefService_Close(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name:   "owner closes",
			userID: "traveler-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBrief(), nil)
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
		},
		{
			name:   "already closed",
			userID: "traveler-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBrief(), nil)
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:   "not the owner",
			userID: "traveler-2",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBrief(), nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:   "missing",
			userID: "traveler-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Brief{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Close(context.Background(), tt.userID, "brief-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestBriefService_Respond(t *testing.T) {
	f := newFixture(t)

	req := chatDto.SendOfferRequest{
		VehicleID: "vehicle-1",
		Price:     60000,
		StartDate: daysFromNow(10),
		EndDate:   daysFromNow(13),
	}

	closed := openBrief()
	closed.Status = model.StatusClosed

	pending := approvedDriver()
	pending.DriverStatus = userModel.DriverStatusPending

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
		wantMsg   string
		wantErr   bool
	}{
		{
			name: "opens the linked conversation and sends the offer",
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedDriver(), nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBrief(), nil)
				f.chat.EXPECT().OpenConversation(gomock.Any(), "traveler-1", "driver-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, briefID *string) (chatModel.Conversation, error) {
						require.NotNil(t, briefID)
						assert.Equal(t, "brief-1", *briefID)

						return chatModel.Conversation{ID: "conv-1"}, nil
					})
				f.chat.EXPECT().SendOffer(gomock.Any(), "driver-1", "conv-1", req).
					Return(chatDto.MessageResponse{ID: "msg-1", ConversationID: "conv-1"}, nil)
			},
		},
		{
			name: "driver not approved",
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "brief closed",
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedDriver(), nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closed, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "conversation refused keeps its message",
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedDriver(), nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openBrief(), nil)
				f.chat.EXPECT().OpenConversation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(chatModel.Conversation{}, failure.NotFound("traveler not found"))
			},
			wantErr:  true,
			wantCode: 404,
			wantMsg:  "traveler not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Respond(context.Background(), "driver-1", "brief-1", req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "conv-1", res.ConversationID)
		})
	}
}
