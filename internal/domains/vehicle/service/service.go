package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Vehicle=MockVehicleService

import (
	"context"
	"fmt"
	"lankaride/config"
	"lankaride/infras/otel"
	"lankaride/infras/s3"
	bookingRepository "lankaride/internal/domains/booking/repository"
	notifModel "lankaride/internal/domains/notification/model"
	notifService "lankaride/internal/domains/notification/service"
	"lankaride/internal/domains/vehicle/model"
	"lankaride/internal/domains/vehicle/model/dto"
	"lankaride/internal/domains/vehicle/repository"
	"lankaride/shared"
	"lankaride/shared/cache"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"mime/multipart"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetVehicle     = constant.CacheVehicleGet
	cacheGetAllVehicles = "vehicle:gets"
	cacheSearchVehicles = constant.CacheVehicleSearch
)

type Vehicle interface {
	Create(ctx context.Context, driverID string, req dto.CreateVehicleRequest) (dto.VehicleResponse, error)
	Update(ctx context.Context, driverID, id string, req dto.UpdateVehicleRequest) error
	Delete(ctx context.Context, driverID, id string) error
	UploadImages(ctx context.Context, driverID, id string, req dto.UploadImagesRequest) (dto.VehicleResponse, error)
	RemoveImage(ctx context.Context, driverID, id string, index int) (dto.VehicleResponse, error)
	ListMine(ctx context.Context, driverID string, params gDto.QueryParams) (dto.GetVehiclesResponse, error)

	Search(ctx context.Context, params gDto.QueryParams, req dto.SearchRequest) (dto.GetVehiclesResponse, error)
	Get(ctx context.Context, id string) (dto.VehicleResponse, error)

	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVehiclesResponse, error)
	SetStatus(ctx context.Context, id string, req dto.SetStatusRequest) error
}

type serviceImpl struct {
	repo        repository.Vehicle
	bookingRepo bookingRepository.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
	notifier    notifService.Notifier
}

func New(
	repo repository.Vehicle,
	bookingRepo bookingRepository.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	notifier notifService.Notifier,
) Vehicle {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
		notifier:    notifier,
	}
}

// FilterBookable narrows a query to vehicles travelers may book.
func FilterBookable() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			shared.FilterEq(model.TableName,
				model.FieldStatus, model.StatusApproved,
				model.FieldActive, true,
			),
			gDto.Filter{
				ArgName:  "driver_status",
				Field:    "driver_status",
				Value:    model.StatusApproved,
				Operator: gDto.FilterOperatorEq,
				Table:    "users",
			},
			gDto.Filter{
				ArgName:  "driver_active",
				Field:    "active",
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    "users",
			},
		},
	}
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Vehicle, error) {
	vehicle, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("vehicleID", id).Msg("failed to get vehicle")

		return vehicle, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == constant.Empty {
		return vehicle, failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	return vehicle, nil
}

// owned returns the vehicle only when driverID owns it. Other drivers see a 404.
func (s *serviceImpl) owned(ctx context.Context, driverID, id string) (model.Vehicle, error) {
	vehicle, err := s.find(ctx, id)
	if err != nil {
		return vehicle, err
	}

	if vehicle.DriverID != driverID {
		return vehicle, failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	return vehicle, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVehicle, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete vehicle cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVehicles)
		shared.InvalidateCaches(c, s.cache, cacheSearchVehicles)
	}()
}

func (s *serviceImpl) uploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))

	for _, file := range files {
		url, err := s.s3.UploadFile(ctx, s3.DirVehicles, file)
		if err != nil {
			log.Error().Err(err).Str("file", file.Filename).Msg("failed to upload vehicle image")
			s.removeObjects(ctx, urls...)

			return nil, fmt.Errorf("failed to upload vehicle image: %w", err)
		}

		urls = append(urls, url)
	}

	return urls, nil
}

func (s *serviceImpl) removeObjects(ctx context.Context, urls ...string) {
	if len(urls) == 0 {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		for _, url := range urls {
			if err := s.s3.DeleteFile(c, s.s3.ObjectKeyFromURL(url)); err != nil {
				log.Error().Err(err).Str("url", url).Msg("failed to delete object")
			}
		}
	}()
}

func (s *serviceImpl) Create(ctx context.Context, driverID string, req dto.CreateVehicleRequest) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(req.Images) > s.cfg.Marketplace.MaxVehicleImages {
		return res, failure.BadRequestf("a vehicle can have at most %d images", s.cfg.Marketplace.MaxVehicleImages) // nolint:wrapcheck
	}

	urls, err := s.uploadImages(ctx, req.Images)
	if err != nil {
		return res, err
	}

	vehicle := req.ToModel(driverID, urls)

	if err = s.repo.Insert(ctx, vehicle); err != nil {
		s.removeObjects(ctx, urls...)

		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("plate number is already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create vehicle")

		return res, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.invalidate(ctx, vehicle.ID)

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, driverID, id string, req dto.UpdateVehicleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicle, err := s.owned(ctx, driverID, id)
	if err != nil {
		return err
	}

	if req.PlateNumber != constant.Empty {
		req.PlateNumber = dto.NormalizePlate(req.PlateNumber)
	}

	fields := shared.TransformFields(req, driverID)

	// An edited rejection goes back to the review queue.
	if vehicle.Status == model.StatusRejected {
		fields[model.FieldStatus] = model.StatusPending
		fields[model.FieldStatusReason] = constant.Empty
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("plate number is already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update vehicle")

		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, driverID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicle, err := s.owned(ctx, driverID, id)
	if err != nil {
		return err
	}

	active, err := s.bookingRepo.Exist(ctx, bookingRepository.FilterActive(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check vehicle bookings")

		return fmt.Errorf("failed to check vehicle bookings: %w", err)
	}

	if active {
		return failure.Conflict("vehicle has pending or confirmed bookings") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsFkViolation(err) {
			return failure.Conflict("vehicle has booking history, deactivate it instead") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete vehicle")

		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.removeObjects(ctx, vehicle.Images...)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) UploadImages(ctx context.Context, driverID, id string, req dto.UploadImagesRequest) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImages")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicle, err := s.owned(ctx, driverID, id)
	if err != nil {
		return res, err
	}

	if len(vehicle.Images)+len(req.Images) > s.cfg.Marketplace.MaxVehicleImages {
		return res, failure.BadRequestf("a vehicle can have at most %d images", s.cfg.Marketplace.MaxVehicleImages) // nolint:wrapcheck
	}

	urls, err := s.uploadImages(ctx, req.Images)
	if err != nil {
		return res, err
	}

	vehicle.Images = append(vehicle.Images, urls...)

	fields := shared.Touch(map[string]any{model.FieldImages: vehicle.Images}, driverID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		s.removeObjects(ctx, urls...)
		log.Error().Err(err).Msg("failed to save vehicle images")

		return res, fmt.Errorf("failed to save vehicle images: %w", err)
	}

	s.invalidate(ctx, id)

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) RemoveImage(ctx context.Context, driverID, id string, index int) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicle, err := s.owned(ctx, driverID, id)
	if err != nil {
		return res, err
	}

	if index < 0 || index >= len(vehicle.Images) {
		return res, failure.BadRequestFromString("image index out of range") // nolint:wrapcheck
	}

	removed := vehicle.Images[index]
	vehicle.Images = append(vehicle.Images[:index:index], vehicle.Images[index+1:]...)

	fields := shared.Touch(map[string]any{model.FieldImages: vehicle.Images}, driverID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to remove vehicle image")

		return res, fmt.Errorf("failed to remove vehicle image: %w", err)
	}

	s.removeObjects(ctx, removed)
	s.invalidate(ctx, id)

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, cacheKey string, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVehiclesResponse, err error) {
	if cacheKey != constant.Empty {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Info().Str("cacheKey", cacheKey).Msg("cache hit for vehicles")

			return res, nil
		}
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count vehicles")

		return res, fmt.Errorf("failed to count vehicles: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicles")

		return res, fmt.Errorf("failed to get vehicles: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	if cacheKey != constant.Empty {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save vehicles to cache")
			}
		}()
	}

	return res, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, driverID string, params gDto.QueryParams) (res dto.GetVehiclesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterEq(model.TableName, model.FieldDriverID, driverID)

	return s.list(ctx, shared.BuildCacheKeyWithQuery(cacheGetAllVehicles, params, filter), params, filter)
}

func (s *serviceImpl) Search(ctx context.Context, params gDto.QueryParams, req dto.SearchRequest) (res dto.GetVehiclesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{FilterBookable()},
	}

	if req.District != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldDistrict, Value: req.District, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if req.Type != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldType, Value: req.Type, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if req.MinSeats != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldSeats, Value: *req.MinSeats, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName,
		})
	}

	if req.MaxPrice != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldPricePerDay, Value: *req.MaxPrice, Operator: gDto.FilterOperatorLessEq, Table: model.TableName,
		})
	}

	start, end, dated, err := req.Window()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheSearchVehicles, params, filter)

	if dated {
		if end.Before(start) {
			return res, failure.BadRequestFromString("end date must not be before start date") // nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters, repository.FilterAvailable(start, end))

		// Availability moves with every booking so dated searches always hit the database.
		cacheKey = constant.Empty
	}

	return s.list(ctx, cacheKey, params, filter)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, role := shared.UserFromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetVehicle, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		vehicle, err := s.find(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(vehicle)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save vehicle to cache")
			}
		}()
	}

	// Unlisted vehicles stay visible to their driver and to admins only.
	visible := res.Status == model.StatusApproved && res.Active
	if !visible && res.DriverID != userID && role != constant.RoleAdmin {
		return dto.VehicleResponse{}, failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVehiclesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, shared.BuildCacheKeyWithQuery(cacheGetAllVehicles, params, filter), params, filter)
}

func (s *serviceImpl) SetStatus(ctx context.Context, id string, req dto.SetStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicle, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	adminID, _ := shared.UserFromContext(ctx)

	reason := req.Reason
	if req.Status == model.StatusApproved {
		reason = constant.Empty
	}

	fields := shared.Touch(map[string]any{
		model.FieldStatus:       req.Status,
		model.FieldStatusReason: reason,
	}, adminID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update vehicle status")

		return fmt.Errorf("failed to update vehicle status: %w", err)
	}

	s.invalidate(ctx, id)

	s.notifier.Notify(ctx, notifModel.Event{
		Type:           notifModel.TypeVehicleStatus,
		RecipientEmail: vehicle.DriverEmail,
		RecipientName:  vehicle.DriverName,
		Data: map[string]string{
			notifModel.DataStatus:  req.Status,
			notifModel.DataReason:  reason,
			notifModel.DataVehicle: vehicle.Title(),
		},
	})

	return nil
}
