package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lankaride/infras/otel/mocks"
	availabilityMocks "lankaride/internal/domains/availability/mocks"
	"lankaride/internal/domains/availability/model"
	"lankaride/internal/domains/availability/model/dto"
	"lankaride/internal/domains/availability/service"
	bookingMocks "lankaride/internal/domains/booking/mocks"
	vehicleMocks "lankaride/internal/domains/vehicle/mocks"
	vehicleModel "lankaride/internal/domains/vehicle/model"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
)

func TestAvailabilityService_Add(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := availabilityMocks.NewMockAvailability(ctrl)
	vehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.New(repo, vehicleRepo, bookingRepo, mocks.NewOtel())

	owned := vehicleModel.Vehicle{ID: "vehicle-1", DriverID: "driver-1"}

	tests := []struct {
		name      string
		req       dto.AddRequest
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "blocks free dates",
			req:  dto.AddRequest{StartDate: "2026-12-01", EndDate: "2026-12-02", Reason: "service"},
			setupMock: func() {
				vehicleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owned, nil)
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						where, _ := filter.GetWhereClause()
						assert.Contains(t, where, "bookings.start_date <= :overlap_start_date")
						assert.Contains(t, where, "bookings.end_date >= :overlap_end_date")

						return false, nil
					})
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry model.Availability) error {
						assert.Equal(t, model.StatusUnavailable, entry.Status)

						return nil
					})
			},
		},
		{
			name: "conflicts with a booking",
			req:  dto.AddRequest{StartDate: "2026-12-01", EndDate: "2026-12-02"},
			setupMock: func() {
				vehicleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owned, nil)
				bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "available windows skip the booking check",
			req:  dto.AddRequest{StartDate: "2026-12-01", EndDate: "2026-12-01", Status: model.StatusAvailable},
			setupMock: func() {
				vehicleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owned, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "end before start",
			req:       dto.AddRequest{StartDate: "2026-12-03", EndDate: "2026-12-01"},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "not the owner",
			req:  dto.AddRequest{StartDate: "2026-12-01", EndDate: "2026-12-02"},
			setupMock: func() {
				vehicleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(vehicleModel.Vehicle{ID: "vehicle-1", DriverID: "driver-2"}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Add(context.Background(), "driver-1", "vehicle-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.req.StartDate, res.StartDate)
				assert.Equal(t, tt.req.EndDate, res.EndDate)
			}
		})
	}
}

func TestAvailabilityService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := availabilityMocks.NewMockAvailability(ctrl)
	vehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	svc := service.New(repo, vehicleRepo, bookingMocks.NewMockBooking(ctrl), mocks.NewOtel())

	t.Run("unknown entry", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Availability{}, nil)

		err := svc.Delete(context.Background(), "driver-1", "entry-1")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("deletes an owned entry", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Availability{ID: "entry-1", VehicleID: "vehicle-1"}, nil)
		vehicleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(vehicleModel.Vehicle{ID: "vehicle-1", DriverID: "driver-1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "driver-1", "entry-1"))
	})
}
