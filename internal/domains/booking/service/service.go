package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"lankaride/config"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	availabilityRepository "lankaride/internal/domains/availability/repository"
	"lankaride/internal/domains/booking/model"
	"lankaride/internal/domains/booking/model/dto"
	"lankaride/internal/domains/booking/repository"
	chatModel "lankaride/internal/domains/chat/model"
	chatRepository "lankaride/internal/domains/chat/repository"
	commissionModel "lankaride/internal/domains/commission/model"
	commissionService "lankaride/internal/domains/commission/service"
	notifModel "lankaride/internal/domains/notification/model"
	notifService "lankaride/internal/domains/notification/service"
	vehicleModel "lankaride/internal/domains/vehicle/model"
	vehicleRepository "lankaride/internal/domains/vehicle/repository"
	"lankaride/shared"
	"lankaride/shared/cache"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"lankaride/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheSummary       = "booking:summary"
)

const (
	reasonUnavailable = "the driver marked some of these dates unavailable"
	reasonBooked      = "the vehicle is already booked on some of these dates"
	reasonNotListed   = "the vehicle is not accepting bookings"
)

type Booking interface {
	CheckAvailability(ctx context.Context, vehicleID string, req dto.DateRangeRequest) (dto.AvailabilityResponse, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Create(ctx context.Context, travelerID string, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CreateFromOffer(ctx context.Context, travelerID string, offer dto.OfferBooking) (dto.BookingResponse, error)

	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	ListMine(ctx context.Context, travelerID string, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	ListForDriver(ctx context.Context, driverID string, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)

	Confirm(ctx context.Context, driverID, id string) error
	Reject(ctx context.Context, driverID, id string, req dto.ReasonRequest) error
	Cancel(ctx context.Context, userID, id string, req dto.ReasonRequest) error

	Summary(ctx context.Context) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	repo             repository.Booking
	vehicleRepo      vehicleRepository.Vehicle
	availabilityRepo availabilityRepository.Availability
	messageRepo      chatRepository.Message
	commission       commissionService.Commission
	notifier         notifService.Notifier
	transactor       postgres.Transactor
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel
}

func New(
	repo repository.Booking,
	vehicleRepo vehicleRepository.Vehicle,
	availabilityRepo availabilityRepository.Availability,
	messageRepo chatRepository.Message,
	commission commissionService.Commission,
	notifier notifService.Notifier,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:             repo,
		vehicleRepo:      vehicleRepo,
		availabilityRepo: availabilityRepo,
		messageRepo:      messageRepo,
		commission:       commission,
		notifier:         notifier,
		transactor:       transactor,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
	}
}

// window validates a requested stay and returns its inclusive day count.
func (s *serviceImpl) window(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, failure.BadRequestFromString("end date must not be before start date") // nolint:wrapcheck
	}

	if start.Before(timezone.Today()) {
		return 0, failure.BadRequestFromString("start date is in the past") // nolint:wrapcheck
	}

	days := shared.InclusiveDays(start, end)
	if limit := s.cfg.Marketplace.MaxBookingDays; limit > 0 && days > limit {
		return 0, failure.BadRequestf("a booking can span at most %d days", limit) // nolint:wrapcheck
	}

	return days, nil
}

func parseWindow(req dto.DateRangeRequest) (start, end time.Time, err error) {
	start, end, err = req.Parse()
	if err != nil {
		return start, end, failure.BadRequest(err) // nolint:wrapcheck
	}

	return start, end, nil
}

// vehicle loads the vehicle, holding its row lock when tx is set.
func (s *serviceImpl) vehicle(ctx context.Context, tx *sqlx.Tx, id string) (vehicleModel.Vehicle, error) {
	filter := shared.FilterByID(id, vehicleModel.FieldID, vehicleModel.TableName)

	vehicle, err := s.vehicleRepo.LockTx(ctx, tx, filter)
	if err != nil {
		log.Error().Err(err).Str("vehicleID", id).Msg("failed to get vehicle")

		return vehicle, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == constant.Empty {
		return vehicle, failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	return vehicle, nil
}

// conflict returns why [start, end] cannot be booked, or an empty string when it is free.
func (s *serviceImpl) conflict(ctx context.Context, tx *sqlx.Tx, vehicleID string, start, end time.Time) (string, error) {
	blocked, err := s.availabilityRepo.ExistTx(ctx, tx, availabilityRepository.FilterBlocking(vehicleID, start, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return constant.Empty, fmt.Errorf("failed to check availability: %w", err)
	}

	if blocked {
		return reasonUnavailable, nil
	}

	booked, err := s.repo.ExistTx(ctx, tx, repository.FilterActiveOverlap(vehicleID, start, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to check bookings")

		return constant.Empty, fmt.Errorf("failed to check bookings: %w", err)
	}

	if booked {
		return reasonBooked, nil
	}

	return constant.Empty, nil
}

func (s *serviceImpl) insert(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
		if shared.IsExclusionViolation(err) {
			return failure.Conflict(reasonBooked) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)

		if err := s.cache.Delete(c, cacheSummary); err != nil {
			log.Error().Err(err).Msg("failed to delete booking summary cache")
		}
	}()
}

func (s *serviceImpl) notify(ctx context.Context, eventType, email, name string, booking model.Booking, reason string) {
	s.notifier.Notify(ctx, notifModel.Event{
		Type:           eventType,
		RecipientEmail: email,
		RecipientName:  name,
		Data: map[string]string{
			notifModel.DataBookingID: booking.ID,
			notifModel.DataVehicle:   booking.VehicleTitle(),
			notifModel.DataStartDate: timezone.FormatDate(booking.StartDate),
			notifModel.DataEndDate:   timezone.FormatDate(booking.EndDate),
			notifModel.DataTotal:     fmt.Sprintf("%.2f", booking.GrossPrice),
			notifModel.DataReason:    reason,
		},
	})
}

// withVehicle copies the joined vehicle and driver columns the insert does not read back.
func withVehicle(booking model.Booking, vehicle vehicleModel.Vehicle) model.Booking {
	booking.VehicleMake = vehicle.Make
	booking.VehicleModel = vehicle.Model
	booking.VehiclePlate = vehicle.PlateNumber
	booking.DriverName = vehicle.DriverName
	booking.DriverEmail = vehicle.DriverEmail

	return booking
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, vehicleID string, req dto.DateRangeRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := parseWindow(req)
	if err != nil {
		return res, err
	}

	if res.Days, err = s.window(start, end); err != nil {
		return res, err
	}

	vehicle, err := s.vehicle(ctx, nil, vehicleID)
	if err != nil {
		return res, err
	}

	if !vehicle.Bookable() {
		res.Reason = reasonNotListed

		return res, nil
	}

	if res.Reason, err = s.conflict(ctx, nil, vehicleID, start, end); err != nil {
		return res, err
	}

	res.Available = res.Reason == constant.Empty

	return res, nil
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := parseWindow(req.DateRangeRequest)
	if err != nil {
		return res, err
	}

	days, err := s.window(start, end)
	if err != nil {
		return res, err
	}

	vehicle, err := s.vehicle(ctx, nil, req.VehicleID)
	if err != nil {
		return res, err
	}

	if !vehicle.Bookable() {
		return res, failure.BadRequestFromString(reasonNotListed) // nolint:wrapcheck
	}

	gross := commissionModel.Round(float64(days)*vehicle.PricePerDay, 2)

	quote, err := s.commission.Resolve(ctx, gross, start)
	if err != nil {
		return res, fmt.Errorf("failed to resolve commission: %w", err)
	}

	res = dto.QuoteResponse{
		VehicleID:   vehicle.ID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        days,
		PricePerDay: vehicle.PricePerDay,
	}
	res.FromQuote(quote)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, travelerID string, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := parseWindow(req.DateRangeRequest)
	if err != nil {
		return res, err
	}

	days, err := s.window(start, end)
	if err != nil {
		return res, err
	}

	var (
		booking model.Booking
		vehicle vehicleModel.Vehicle
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.vehicle(ctx, tx, req.VehicleID)
		if err != nil {
			return err
		}

		vehicle = locked

		if !vehicle.Bookable() {
			return failure.BadRequestFromString(reasonNotListed) // nolint:wrapcheck
		}

		if vehicle.DriverID == travelerID {
			return failure.BadRequestFromString("you cannot book your own vehicle") // nolint:wrapcheck
		}

		reason, err := s.conflict(ctx, tx, locked.ID, start, end)
		if err != nil {
			return err
		}

		if reason != constant.Empty {
			return failure.Conflict(reason) // nolint:wrapcheck
		}

		gross := commissionModel.Round(float64(days)*vehicle.PricePerDay, 2)

		quote, err := s.commission.Resolve(ctx, gross, start)
		if err != nil {
			return fmt.Errorf("failed to resolve commission: %w", err)
		}

		booking = dto.Draft{
			VehicleID:      vehicle.ID,
			DriverID:       vehicle.DriverID,
			TravelerID:     travelerID,
			StartDate:      start,
			EndDate:        end,
			PricePerDay:    vehicle.PricePerDay,
			PickupLocation: req.PickupLocation,
			Notes:          req.Notes,
		}.ToModel(days, quote)

		return s.insert(ctx, tx, booking)
	})
	if err != nil {
		return res, err
	}

	booking = withVehicle(booking, vehicle)

	s.invalidate(ctx, booking.ID)
	s.notify(ctx, notifModel.TypeBookingRequested, vehicle.DriverEmail, vehicle.DriverName, booking, constant.Empty)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) CreateFromOffer(ctx context.Context, travelerID string, offer dto.OfferBooking) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateFromOffer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	days, err := s.window(offer.StartDate, offer.EndDate)
	if err != nil {
		return res, err
	}

	var (
		booking model.Booking
		vehicle vehicleModel.Vehicle
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.vehicle(ctx, tx, offer.VehicleID)
		if err != nil {
			return err
		}

		vehicle = locked

		if !vehicle.Bookable() || vehicle.DriverID != offer.DriverID {
			return failure.BadRequestFromString(reasonNotListed) // nolint:wrapcheck
		}

		reason, err := s.conflict(ctx, tx, locked.ID, offer.StartDate, offer.EndDate)
		if err != nil {
			return err
		}

		if reason != constant.Empty {
			return failure.Conflict(reason) // nolint:wrapcheck
		}

		quote, err := s.commission.Resolve(ctx, offer.GrossPrice, offer.StartDate)
		if err != nil {
			return fmt.Errorf("failed to resolve commission: %w", err)
		}

		messageID := offer.MessageID

		booking = dto.Draft{
			VehicleID:      vehicle.ID,
			DriverID:       vehicle.DriverID,
			TravelerID:     travelerID,
			OfferMessageID: &messageID,
			StartDate:      offer.StartDate,
			EndDate:        offer.EndDate,
			PricePerDay:    commissionModel.Round(offer.GrossPrice/float64(days), 2),
		}.ToModel(days, quote)

		if err = s.insert(ctx, tx, booking); err != nil {
			return err
		}

		return s.claimOffer(ctx, tx, offer.MessageID, booking.ID, travelerID)
	})
	if err != nil {
		return res, err
	}

	booking = withVehicle(booking, vehicle)

	s.invalidate(ctx, booking.ID)
	s.notify(ctx, notifModel.TypeBookingRequested, vehicle.DriverEmail, vehicle.DriverName, booking, constant.Empty)

	res.FromModel(booking)

	return res, nil
}

// claimOffer links the accepted offer to the booking. A second conversion matches no row.
func (s *serviceImpl) claimOffer(ctx context.Context, tx *sqlx.Tx, messageID, bookingID, travelerID string) error {
	filter := chatRepository.FilterOfferIn(messageID, chatModel.OfferStatusAccepted)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    chatModel.FieldOfferBookingID,
		Operator: gDto.FilterIsNull,
		Table:    chatModel.MessageTableName,
	})

	fields := shared.Touch(map[string]any{chatModel.FieldOfferBookingID: bookingID}, travelerID)

	affected, err := s.messageRepo.UpdateCountTx(ctx, tx, fields, filter)
	if err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("offer was already converted into a booking") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to link offer")

		return fmt.Errorf("failed to link offer: %w", err)
	}

	if affected == 0 {
		return failure.Conflict("offer was already converted into a booking") // nolint:wrapcheck
	}

	return nil
}

// declineOffer marks the offer behind a released booking as declined. Failures are logged only.
func (s *serviceImpl) declineOffer(ctx context.Context, booking model.Booking, userID string) {
	if booking.OfferMessageID == nil {
		return
	}

	fields := shared.Touch(map[string]any{chatModel.FieldOfferStatus: chatModel.OfferStatusDeclined}, userID)

	_, err := s.messageRepo.UpdateCount(ctx, fields, chatRepository.FilterOfferIn(*booking.OfferMessageID, chatModel.OfferStatusAccepted))
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to decline linked offer")
	}
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, role := shared.UserFromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		booking, err := s.find(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	if role != constant.RoleAdmin && res.TravelerID != userID && res.DriverID != userID {
		return dto.BookingResponse{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func scoped(field, userID string, filter gDto.FilterGroup) gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{shared.FilterEq(model.TableName, field, userID)},
	}

	if len(filter.Filters) > 0 {
		group.Filters = append(group.Filters, filter)
	}

	return group
}

func (s *serviceImpl) ListMine(ctx context.Context, travelerID string, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, params, scoped(model.FieldTravelerID, travelerID, filter))
}

func (s *serviceImpl) ListForDriver(ctx context.Context, driverID string, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForDriver")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, params, scoped(model.FieldDriverID, driverID, filter))
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, params, filter)
}

// transition applies fields only while the booking is still in one of from.
func (s *serviceImpl) transition(ctx context.Context, id string, from []string, fields map[string]any) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: from, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}

	affected, err := s.repo.UpdateCount(ctx, fields, filter)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		return failure.Conflict("booking status changed, reload and try again") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

// driverBooking loads a pending booking owned by driverID.
func (s *serviceImpl) driverBooking(ctx context.Context, driverID, id string) (model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return booking, err
	}

	if booking.DriverID != driverID {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status != model.StatusPending {
		return booking, failure.Conflict("only pending bookings can be answered") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, driverID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.driverBooking(ctx, driverID, id)
	if err != nil {
		return err
	}

	quote, err := s.commission.Resolve(ctx, booking.GrossPrice, booking.StartDate)
	if err != nil {
		return fmt.Errorf("failed to resolve commission: %w", err)
	}

	fields := map[string]any{model.FieldStatus: model.StatusConfirmed}

	// Discounts may have moved since the request, the split is stored as of confirmation.
	if booking.ApplyQuote(quote) {
		for field, value := range booking.CommissionFields() {
			fields[field] = value
		}
	}

	if err = s.transition(ctx, id, []string{model.StatusPending}, shared.Touch(fields, driverID)); err != nil {
		return err
	}

	s.notify(ctx, notifModel.TypeBookingConfirmed, booking.TravelerEmail, booking.TravelerName, booking, constant.Empty)

	return nil
}

func (s *serviceImpl) Reject(ctx context.Context, driverID, id string, req dto.ReasonRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.driverBooking(ctx, driverID, id)
	if err != nil {
		return err
	}

	fields := shared.Touch(map[string]any{
		model.FieldStatus:       model.StatusRejected,
		model.FieldCancelReason: req.Reason,
		model.FieldCancelledBy:  driverID,
	}, driverID)

	if err = s.transition(ctx, id, []string{model.StatusPending}, fields); err != nil {
		return err
	}

	s.declineOffer(ctx, booking, driverID)
	s.notify(ctx, notifModel.TypeBookingRejected, booking.TravelerEmail, booking.TravelerName, booking, req.Reason)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, userID, id string, req dto.ReasonRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if booking.TravelerID != userID && booking.DriverID != userID {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !booking.IsActive() {
		return failure.Conflict("booking is already closed") // nolint:wrapcheck
	}

	if !timezone.Today().Before(timezone.CalendarDay(booking.StartDate)) {
		return failure.BadRequestFromString("bookings can only be cancelled before the start date") // nolint:wrapcheck
	}

	fields := shared.Touch(map[string]any{
		model.FieldStatus:       model.StatusCancelled,
		model.FieldCancelReason: req.Reason,
		model.FieldCancelledBy:  userID,
	}, userID)

	if err = s.transition(ctx, id, model.ActiveStatuses, fields); err != nil {
		return err
	}

	s.declineOffer(ctx, booking, userID)

	email, name := booking.DriverEmail, booking.DriverName
	if userID == booking.DriverID {
		email, name = booking.TravelerEmail, booking.TravelerName
	}

	s.notify(ctx, notifModel.TypeBookingCancelled, email, name, booking, req.Reason)

	return nil
}

const totalsExpr = "COUNT(bookings.id) AS count, " +
	"COALESCE(SUM(bookings.gross_price), 0) AS gross_price, " +
	"COALESCE(SUM(bookings.commission_amount), 0) AS commission_amount, " +
	"COALESCE(SUM(bookings.driver_earnings), 0) AS driver_earnings"

func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheSummary, &res); err == nil {
		return res, nil
	}

	res.ByStatus = make(map[string]int, 4)

	for _, status := range []string{model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusRejected} {
		count, err := s.repo.Count(ctx, shared.FilterEq(model.TableName, model.FieldStatus, status))
		if err != nil {
			log.Error().Err(err).Msg("failed to count bookings")

			return res, fmt.Errorf("failed to count bookings: %w", err)
		}

		res.ByStatus[status] = count
		res.Total += count
	}

	var totals dto.Totals

	err = s.repo.Aggregate(ctx, totalsExpr, shared.FilterEq(model.TableName, model.FieldStatus, model.StatusConfirmed), &totals)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate bookings")

		return res, fmt.Errorf("failed to aggregate bookings: %w", err)
	}

	res.ConfirmedGross = totals.GrossPrice
	res.CommissionEarned = totals.CommissionAmount
	res.DriverEarnings = totals.DriverEarnings

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheSummary, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking summary to cache")
		}
	}()

	return res, nil
}
