package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lankaride/config"
	"lankaride/infras/otel/mocks"
	bookingMocks "lankaride/internal/domains/booking/mocks"
	bookingModel "lankaride/internal/domains/booking/model"
	reviewMocks "lankaride/internal/domains/review/mocks"
	"lankaride/internal/domains/review/model"
	"lankaride/internal/domains/review/model/dto"
	"lankaride/internal/domains/review/service"
	cacheMocks "lankaride/shared/cache/mocks"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"lankaride/shared/timezone"
)

type fixture struct {
	repo        *reviewMocks.MockReview
	bookingRepo *bookingMocks.MockBooking
	cache       *cacheMocks.MockRedisCache
	svc         service.Review
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        reviewMocks.NewMockReview(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.bookingRepo, &config.Config{}, f.cache, mocks.NewOtel())

	return f
}

func finishedBooking() bookingModel.Booking {
	end := timezone.Today().AddDate(0, 0, -1)

	return bookingModel.Booking{
		ID:         "booking-1",
		VehicleID:  "vehicle-1",
		DriverID:   "driver-1",
		TravelerID: "traveler-1",
		StartDate:  end.AddDate(0, 0, -2),
		EndDate:    end,
		Status:     bookingModel.StatusConfirmed,
	}
}

func TestReviewService_Create(t *testing.T) {
	f := newFixture(t)

	upcoming := finishedBooking()
	upcoming.StartDate = timezone.Today().AddDate(0, 0, 2)
	upcoming.EndDate = timezone.Today().AddDate(0, 0, 4)

	cancelled := finishedBooking()
	cancelled.Status = bookingModel.StatusCancelled

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "reviews a finished trip",
			setupMock: func() {
				f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(finishedBooking(), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, review model.Review) error {
						assert.Equal(t, model.StatusPending, review.Status)
						assert.Equal(t, "driver-1", review.DriverID)
						assert.Equal(t, "vehicle-1", review.VehicleID)

						return nil
					})
			},
		},
		{
			name: "trip not over",
			setupMock: func() {
				f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "booking not confirmed",
			setupMock: func() {
				f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "already reviewed",
			setupMock: func() {
				f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(finishedBooking(), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "unique index catches a double submit",
			setupMock: func() {
				f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(finishedBooking(), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "someone else's booking",
			setupMock: func() {
				other := finishedBooking()
				other.TravelerID = "traveler-2"
				f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(other, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(context.Background(), "traveler-1", "booking-1", dto.CreateReviewRequest{Rating: 5, Comment: "Great driver"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 5, res.Rating)
		})
	}
}

func TestReviewService_Moderate(t *testing.T) {
	f := newFixture(t)

	t.Run("approves", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{ID: "review-1", DriverID: "driver-1"}, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])

				return 1, nil
			})

		err := f.svc.Moderate(context.Background(), "admin-1", "review-1", dto.ModerateRequest{Status: model.StatusApproved})
		require.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Review{}, nil)

		err := f.svc.Moderate(context.Background(), "admin-1", "review-1", dto.ModerateRequest{Status: model.StatusRejected})
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestReviewService_ListForDriver_ApprovedOnly(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Review, error) {
			status, ok := filter.Filters[1].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.StatusApproved, status.Value)

			return []model.Review{{ID: "review-1", Rating: 4, Status: model.StatusApproved}}, nil
		})

	res, err := f.svc.ListForDriver(context.Background(), "driver-1", gDto.QueryParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, res.Reviews, 1)
}

func TestReviewService_DriverRating(t *testing.T) {
	f := newFixture(t)

	t.Run("aggregates on a cache miss", func(t *testing.T) {
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Aggregate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ gDto.FilterGroup, dest any) error {
				*dest.(*model.Rating) = model.Rating{Average: 4.666666, Count: 3}

				return nil
			})

		res, err := f.svc.DriverRating(context.Background(), "driver-1")

		require.NoError(t, err)
		assert.InDelta(t, 4.67, res.Average, 0.0001)
		assert.Equal(t, 3, res.Count)
	})

	t.Run("serves the cache", func(t *testing.T) {
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.DriverRating(context.Background(), "driver-1")
		require.NoError(t, err)
	})
}
