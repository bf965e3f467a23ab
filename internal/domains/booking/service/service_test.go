package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lankaride/config"
	"lankaride/infras/otel/mocks"
	pgMocks "lankaride/infras/postgres/mocks"
	availabilityMocks "lankaride/internal/domains/availability/mocks"
	bookingMocks "lankaride/internal/domains/booking/mocks"
	"lankaride/internal/domains/booking/model"
	"lankaride/internal/domains/booking/model/dto"
	"lankaride/internal/domains/booking/service"
	chatMocks "lankaride/internal/domains/chat/mocks"
	chatModel "lankaride/internal/domains/chat/model"
	commissionMocks "lankaride/internal/domains/commission/mocks"
	commissionModel "lankaride/internal/domains/commission/model"
	notifMocks "lankaride/internal/domains/notification/mocks"
	notifModel "lankaride/internal/domains/notification/model"
	vehicleMocks "lankaride/internal/domains/vehicle/mocks"
	vehicleModel "lankaride/internal/domains/vehicle/model"
	cacheMocks "lankaride/shared/cache/mocks"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"lankaride/shared/timezone"
)

type fixture struct {
	repo             *bookingMocks.MockBooking
	vehicleRepo      *vehicleMocks.MockVehicle
	availabilityRepo *availabilityMocks.MockAvailability
	messageRepo      *chatMocks.MockMessage
	commission       *commissionMocks.MockCommissionService
	notifier         *notifMocks.MockNotifier
	cache            *cacheMocks.MockRedisCache
	svc              service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:             bookingMocks.NewMockBooking(ctrl),
		vehicleRepo:      vehicleMocks.NewMockVehicle(ctrl),
		availabilityRepo: availabilityMocks.NewMockAvailability(ctrl),
		messageRepo:      chatMocks.NewMockMessage(ctrl),
		commission:       commissionMocks.NewMockCommissionService(ctrl),
		notifier:         notifMocks.NewMockNotifier(ctrl),
		cache:            cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Marketplace.MaxBookingDays = 30

	f.svc = service.New(
		f.repo, f.vehicleRepo, f.availabilityRepo, f.messageRepo, f.commission, f.notifier,
		pgMocks.NewTransactor(), cfg, f.cache, mocks.NewOtel(),
	)

	return f
}

func daysFromNow(days int) string {
	return timezone.Today().AddDate(0, 0, days).Format(time.DateOnly)
}

func listedVehicle() vehicleModel.Vehicle {
	return vehicleModel.Vehicle{
		ID:           "vehicle-1",
		DriverID:     "driver-1",
		Make:         "Toyota",
		Model:        "Prius",
		PlateNumber:  "CAR-1234",
		PricePerDay:  10000,
		Status:       vehicleModel.StatusApproved,
		Active:       true,
		DriverName:   "Kamal",
		DriverEmail:  "kamal@example.com",
		DriverStatus: vehicleModel.StatusApproved,
		DriverActive: true,
	}
}

func quoteFor(gross float64) commissionModel.Quote {
	return commissionModel.Calculate(gross, 0.15, nil)
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateBookingRequest{
		VehicleID:        "vehicle-1",
		DateRangeRequest: dto.DateRangeRequest{StartDate: daysFromNow(5), EndDate: daysFromNow(7)},
	}

	ownVehicle := listedVehicle()
	ownVehicle.DriverID = "traveler-1"

	pending := listedVehicle()
	pending.Status = vehicleModel.StatusPending

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "creates a pending booking priced by day",
			req:  req,
			setupMock: func() {
				f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(listedVehicle(), nil)
				f.availabilityRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.commission.EXPECT().Resolve(gomock.Any(), 30000.0, gomock.Any()).Return(quoteFor(30000), nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, booking model.Booking) error {
						assert.Equal(t, 3, booking.Days)
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.Equal(t, "driver-1", booking.DriverID)
						assert.InDelta(t, 4500.0, booking.CommissionAmount, 0.001)
						assert.InDelta(t, 25500.0, booking.DriverEarnings, 0.001)

						return nil
					})
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...notifModel.Event) {
						assert.Equal(t, notifModel.TypeBookingRequested, events[0].Type)
						assert.Equal(t, "kamal@example.com", events[0].RecipientEmail)
						assert.Equal(t, "30000.00", events[0].Get(notifModel.DataTotal))
					})
			},
		},
		{
			name: "own vehicle",
			req:  req,
			setupMock: func() {
				f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ownVehicle, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "unlisted vehicle",
			req:  req,
			setupMock: func() {
				f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "unknown vehicle",
			req:  req,
			setupMock: func() {
				f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "driver blocked the dates",
			req:  req,
			setupMock: func() {
				f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(listedVehicle(), nil)
				f.availabilityRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "overlapping booking",
			req:  req,
			setupMock: func() {
				f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(listedVehicle(), nil)
				f.availabilityRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "exclusion constraint catches a race",
			req:  req,
			setupMock: func() {
				f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(listedVehicle(), nil)
				f.availabilityRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.commission.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(quoteFor(30000), nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeExclusionViolation})
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "start in the past",
			req: dto.CreateBookingRequest{
				VehicleID:        "vehicle-1",
				DateRangeRequest: dto.DateRangeRequest{StartDate: daysFromNow(-1), EndDate: daysFromNow(2)},
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "too long",
			req: dto.CreateBookingRequest{
				VehicleID:        "vehicle-1",
				DateRangeRequest: dto.DateRangeRequest{StartDate: daysFromNow(1), EndDate: daysFromNow(31)},
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
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Toyota Prius (CAR-1234)", res.Vehicle)
				assert.Equal(t, tt.req.StartDate, res.StartDate)
				assert.InDelta(t, res.GrossPrice, res.CommissionAmount+res.DriverEarnings, 0.001)
			}
		})
	}
}

func TestBookingService_CreateFromOffer(t *testing.T) {
	f := newFixture(t)

	start, _ := timezone.ParseDate(daysFromNow(3))
	end, _ := timezone.ParseDate(daysFromNow(4))

	offer := dto.OfferBooking{
		MessageID:  "message-1",
		VehicleID:  "vehicle-1",
		DriverID:   "driver-1",
		GrossPrice: 18000,
		StartDate:  start,
		EndDate:    end,
	}

	expectFree := func() {
		f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(listedVehicle(), nil)
		f.availabilityRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.commission.EXPECT().Resolve(gomock.Any(), 18000.0, gomock.Any()).Return(quoteFor(18000), nil)
	}

	t.Run("links the offer", func(t *testing.T) {
		expectFree()
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, booking model.Booking) error {
				require.NotNil(t, booking.OfferMessageID)
				assert.Equal(t, "message-1", *booking.OfferMessageID)
				assert.InDelta(t, 9000.0, booking.PricePerDay, 0.001)

				return nil
			})
		f.messageRepo.EXPECT().UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Contains(t, fields, chatModel.FieldOfferBookingID)

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "messages.offer_booking_id IS NULL")
				assert.Equal(t, chatModel.OfferStatusAccepted, args[chatModel.FieldOfferStatus])

				return 1, nil
			})
		f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		res, err := f.svc.CreateFromOffer(context.Background(), "traveler-1", offer)
		require.NoError(t, err)
		assert.InDelta(t, 18000.0, res.GrossPrice, 0.001)
	})

	t.Run("already converted", func(t *testing.T) {
		expectFree()
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.messageRepo.EXPECT().UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.CreateFromOffer(context.Background(), "traveler-1", offer)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("vehicle changed hands", func(t *testing.T) {
		moved := offer
		moved.DriverID = "driver-2"

		f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(listedVehicle(), nil)

		_, err := f.svc.CreateFromOffer(context.Background(), "traveler-1", moved)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_CheckAvailability(t *testing.T) {
	f := newFixture(t)

	req := dto.DateRangeRequest{StartDate: daysFromNow(1), EndDate: daysFromNow(2)}

	t.Run("free", func(t *testing.T) {
		f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(listedVehicle(), nil)
		f.availabilityRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		res, err := f.svc.CheckAvailability(context.Background(), "vehicle-1", req)
		require.NoError(t, err)
		assert.True(t, res.Available)
		assert.Equal(t, 2, res.Days)
	})

	t.Run("booked", func(t *testing.T) {
		f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(listedVehicle(), nil)
		f.availabilityRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		res, err := f.svc.CheckAvailability(context.Background(), "vehicle-1", req)
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.NotEmpty(t, res.Reason)
	})
}

func TestBookingService_Quote(t *testing.T) {
	f := newFixture(t)

	discounted := commissionModel.Calculate(20000, 0.15, &commissionModel.Discount{ID: "d-1", Rate: 0.05})

	f.vehicleRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(listedVehicle(), nil)
	f.commission.EXPECT().Resolve(gomock.Any(), 20000.0, gomock.Any()).Return(discounted, nil)

	res, err := f.svc.Quote(context.Background(), dto.QuoteRequest{
		VehicleID:        "vehicle-1",
		DateRangeRequest: dto.DateRangeRequest{StartDate: daysFromNow(2), EndDate: daysFromNow(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Days)
	assert.InDelta(t, 0.10, res.CommissionRate, 1e-9)
	assert.InDelta(t, 2000.0, res.CommissionAmount, 0.001)
}

func pendingBooking() model.Booking {
	start, _ := timezone.ParseDate(daysFromNow(5))
	quote := quoteFor(20000)

	booking := model.Booking{
		ID:            "booking-1",
		VehicleID:     "vehicle-1",
		DriverID:      "driver-1",
		TravelerID:    "traveler-1",
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 1),
		Days:          2,
		PricePerDay:   10000,
		Status:        model.StatusPending,
		TravelerEmail: "ana@example.com",
		DriverEmail:   "kamal@example.com",
	}
	booking.ApplyQuote(quote)

	return booking
}

func TestBookingService_Confirm(t *testing.T) {
	f := newFixture(t)

	t.Run("stores a moved commission split", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.commission.EXPECT().Resolve(gomock.Any(), 20000.0, gomock.Any()).
			Return(commissionModel.Calculate(20000, 0.15, &commissionModel.Discount{ID: "d-1", Rate: 0.05}), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])
				assert.InDelta(t, 0.10, fields[model.FieldCommissionRate], 1e-9)

				return 1, nil
			})
		f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		assert.NoError(t, f.svc.Confirm(context.Background(), "driver-1", "booking-1"))
	})

	t.Run("unchanged split writes only the status", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.commission.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(quoteFor(20000), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.NotContains(t, fields, model.FieldCommissionRate)

				return 1, nil
			})
		f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		assert.NoError(t, f.svc.Confirm(context.Background(), "driver-1", "booking-1"))
	})

	t.Run("lost race", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.commission.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(quoteFor(20000), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		err := f.svc.Confirm(context.Background(), "driver-1", "booking-1")
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("other driver", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		err := f.svc.Confirm(context.Background(), "driver-2", "booking-1")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_Reject(t *testing.T) {
	f := newFixture(t)

	fromOffer := pendingBooking()
	messageID := "message-1"
	fromOffer.OfferMessageID = &messageID

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(fromOffer, nil)
	f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.messageRepo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
			assert.Equal(t, chatModel.OfferStatusDeclined, fields[chatModel.FieldOfferStatus])

			return 1, nil
		})
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, events ...notifModel.Event) {
			assert.Equal(t, notifModel.TypeBookingRejected, events[0].Type)
			assert.Equal(t, "ana@example.com", events[0].RecipientEmail)
		})

	assert.NoError(t, f.svc.Reject(context.Background(), "driver-1", "booking-1", dto.ReasonRequest{Reason: "fully booked"}))
}

func TestBookingService_Cancel(t *testing.T) {
	f := newFixture(t)

	started := pendingBooking()
	started.StartDate = timezone.Today()

	closed := pendingBooking()
	closed.Status = model.StatusCancelled

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name:   "driver cancels and the traveler is told",
			userID: "driver-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...notifModel.Event) {
						assert.Equal(t, "ana@example.com", events[0].RecipientEmail)
					})
			},
		},
		{
			name:   "traveler cancels and the driver is told",
			userID: "traveler-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...notifModel.Event) {
						assert.Equal(t, "kamal@example.com", events[0].RecipientEmail)
					})
			},
		},
		{
			name:   "on the start date",
			userID: "traveler-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(started, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:   "already cancelled",
			userID: "traveler-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closed, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:   "stranger",
			userID: "someone",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Cancel(context.Background(), tt.userID, "booking-1", dto.ReasonRequest{})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	f := newFixture(t)

	t.Run("participant", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "traveler-1")

		res, err := f.svc.Get(ctx, "booking-1")
		require.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("admin", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleAdmin)

		_, err := f.svc.Get(ctx, "booking-1")
		assert.NoError(t, err)
	})

	t.Run("stranger", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "someone")

		_, err := f.svc.Get(ctx, "booking-1")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_Summary(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil).Times(4)
	f.repo.EXPECT().Aggregate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, expr string, _ gDto.FilterGroup, dest any) error {
			assert.Contains(t, expr, "SUM(bookings.commission_amount)")

			totals, ok := dest.(*dto.Totals)
			require.True(t, ok)

			totals.GrossPrice = 50000
			totals.CommissionAmount = 7500
			totals.DriverEarnings = 42500

			return nil
		})

	res, err := f.svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, res.Total)
	assert.Equal(t, 2, res.ByStatus[model.StatusConfirmed])
	assert.InDelta(t, 7500.0, res.CommissionEarned, 0.001)
}
