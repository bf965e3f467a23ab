package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Availability=MockAvailabilityService

import (
	"context"
	"fmt"
	"lankaride/infras/otel"
	"lankaride/internal/domains/availability/model"
	"lankaride/internal/domains/availability/model/dto"
	"lankaride/internal/domains/availability/repository"
	bookingRepository "lankaride/internal/domains/booking/repository"
	vehicleModel "lankaride/internal/domains/vehicle/model"
	vehicleRepository "lankaride/internal/domains/vehicle/repository"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"lankaride/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	Add(ctx context.Context, driverID, vehicleID string, req dto.AddRequest) (dto.AvailabilityResponse, error)
	List(ctx context.Context, vehicleID string) ([]dto.AvailabilityResponse, error)
	Delete(ctx context.Context, driverID, id string) error
}

type serviceImpl struct {
	repo        repository.Availability
	vehicleRepo vehicleRepository.Vehicle
	bookingRepo bookingRepository.Booking
	otel        otel.Otel
}

func New(
	repo repository.Availability,
	vehicleRepo vehicleRepository.Vehicle,
	bookingRepo bookingRepository.Booking,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) ownedVehicle(ctx context.Context, driverID, vehicleID string) error {
	vehicle, err := s.vehicleRepo.Get(ctx, shared.FilterByID(vehicleID, vehicleModel.FieldID, vehicleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == constant.Empty || vehicle.DriverID != driverID {
		return failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Add(ctx context.Context, driverID, vehicleID string, req dto.AddRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, err := timezone.ParseDate(req.StartDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	end, err := timezone.ParseDate(req.EndDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if end.Before(start) {
		return res, failure.BadRequestFromString("end date must not be before start date") // nolint:wrapcheck
	}

	if err = s.ownedVehicle(ctx, driverID, vehicleID); err != nil {
		return res, err
	}

	entry := req.ToModel(driverID, vehicleID, start, end)

	if entry.Blocks() {
		booked, err := s.bookingRepo.Exist(ctx, bookingRepository.FilterActiveOverlap(vehicleID, start, end))
		if err != nil {
			log.Error().Err(err).Msg("failed to check bookings")

			return res, fmt.Errorf("failed to check bookings: %w", err)
		}

		if booked {
			return res, failure.Conflict("the vehicle is already booked on some of these dates") // nolint:wrapcheck
		}
	}

	if err = s.repo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to add availability")

		return res, fmt.Errorf("failed to add availability: %w", err)
	}

	res.FromModel(entry)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, vehicleID string) (res []dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldStartDate, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, shared.FilterEq(model.TableName, model.FieldVehicleID, vehicleID))
	if err != nil {
		log.Error().Err(err).Msg("failed to list availability")

		return nil, fmt.Errorf("failed to list availability: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Delete(ctx context.Context, driverID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	entry, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return fmt.Errorf("failed to get availability: %w", err)
	}

	if entry.ID == constant.Empty {
		return failure.NotFound("availability not found") // nolint:wrapcheck
	}

	if err = s.ownedVehicle(ctx, driverID, entry.VehicleID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete availability")

		return fmt.Errorf("failed to delete availability: %w", err)
	}

	return nil
}
