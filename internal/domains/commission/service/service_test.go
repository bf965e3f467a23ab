package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lankaride/config"
	"lankaride/infras/otel/mocks"
	commissionMocks "lankaride/internal/domains/commission/mocks"
	"lankaride/internal/domains/commission/model"
	"lankaride/internal/domains/commission/model/dto"
	"lankaride/internal/domains/commission/service"
	cacheMocks "lankaride/shared/cache/mocks"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
)

func newService(t *testing.T) (*commissionMocks.MockDiscount, service.Commission) {
	ctrl := gomock.NewController(t)

	repo := commissionMocks.NewMockDiscount(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Marketplace.CommissionBaseRate = 0.15

	return repo, service.New(repo, cfg, redis, mocks.NewOtel())
}

func TestCommissionService_Create(t *testing.T) {
	repo, svc := newService(t)

	tests := []struct {
		name      string
		req       dto.CreateDiscountRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "creates an active discount by default",
			req:  dto.CreateDiscountRequest{Name: "Vesak week", Rate: 0.05, StartDate: "2026-05-01", EndDate: "2026-05-07"},
			setupMock: func() {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, discount model.Discount) error {
						assert.True(t, discount.Active)
						assert.Equal(t, 0.05, discount.Rate)

						return nil
					})
			},
		},
		{
			name:      "window must not be reversed",
			req:       dto.CreateDiscountRequest{Name: "Broken", Rate: 0.05, StartDate: "2026-05-07", EndDate: "2026-05-01"},
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "2026-05-01", res.StartDate)
			}
		})
	}
}

func TestCommissionService_Update(t *testing.T) {
	repo, svc := newService(t)

	current := model.Discount{
		ID:        "d1",
		Rate:      0.05,
		StartDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

	err := svc.Update(context.Background(), "d1", dto.UpdateDiscountRequest{StartDate: "2026-05-10"})
	assert.Equal(t, 400, failure.GetCode(err))

	rate := 0.08

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, 0.08, fields[model.FieldRate])
			assert.NotContains(t, fields, model.FieldName)

			return nil
		})

	assert.NoError(t, svc.Update(context.Background(), "d1", dto.UpdateDiscountRequest{Rate: &rate}))

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Discount{}, nil)

	err = svc.Update(context.Background(), "missing", dto.UpdateDiscountRequest{Rate: &rate})
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestCommissionService_Resolve(t *testing.T) {
	repo, svc := newService(t)

	start := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setupMock  func()
		wantAmount float64
		wantErr    bool
	}{
		{
			name: "applies the best covering discount",
			setupMock: func() {
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Discount{
					{ID: "xmas", Rate: 0.05, StartDate: start.AddDate(0, 0, -5), EndDate: start.AddDate(0, 0, 5), Active: true},
					{ID: "small", Rate: 0.01, StartDate: start.AddDate(0, -1, 0), EndDate: start.AddDate(0, 1, 0), Active: true},
				}, nil)
			},
			wantAmount: 1000,
		},
		{
			name: "base rate without discounts",
			setupMock: func() {
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Discount{}, nil)
			},
			wantAmount: 1500,
		},
		{
			name: "repository failure",
			setupMock: func() {
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			quote, err := svc.Resolve(context.Background(), 10000, start)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantAmount, quote.CommissionAmount)
				assert.Equal(t, 10000-tt.wantAmount, quote.DriverEarnings)
			}
		})
	}
}
