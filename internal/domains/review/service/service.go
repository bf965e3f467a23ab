package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Review=MockReviewService

import (
	"context"
	"fmt"
	"lankaride/config"
	"lankaride/infras/otel"
	bookingModel "lankaride/internal/domains/booking/model"
	bookingRepository "lankaride/internal/domains/booking/repository"
	"lankaride/internal/domains/review/model"
	"lankaride/internal/domains/review/model/dto"
	"lankaride/internal/domains/review/repository"
	"lankaride/shared"
	"lankaride/shared/cache"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"lankaride/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheDriverRating = "review:rating"

const ratingExpr = "COALESCE(AVG(reviews.rating), 0) AS average, COUNT(reviews.id) AS count"

type Review interface {
	Create(ctx context.Context, travelerID, bookingID string, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	Moderate(ctx context.Context, adminID, id string, req dto.ModerateRequest) error

	ListForDriver(ctx context.Context, driverID string, params gDto.QueryParams) (dto.GetReviewsResponse, error)
	ListForVehicle(ctx context.Context, vehicleID string, params gDto.QueryParams) (dto.GetReviewsResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReviewsResponse, error)
	DriverRating(ctx context.Context, driverID string) (dto.RatingResponse, error)
}

type serviceImpl struct {
	repo        repository.Review
	bookingRepo bookingRepository.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Review,
	bookingRepo bookingRepository.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Review {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func sortable(params *gDto.QueryParams) {
	params.Sanitize(model.TableName, model.FieldRating, constant.FieldCreatedAt)
}

func approved(field, value string) gDto.FilterGroup {
	return shared.FilterEq(model.TableName,
		field, value,
		model.FieldStatus, model.StatusApproved,
	)
}

func (s *serviceImpl) Create(ctx context.Context, travelerID, bookingID string, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty || booking.TravelerID != travelerID {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusConfirmed {
		return res, failure.BadRequestFromString("only confirmed bookings can be reviewed") // nolint:wrapcheck
	}

	if !booking.Ended(timezone.Now()) {
		return res, failure.BadRequestFromString("the trip has not ended yet") // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterEq(model.TableName, model.FieldBookingID, booking.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check review")

		return res, fmt.Errorf("failed to check review: %w", err)
	}

	if exist {
		return res, failure.Conflict("booking was already reviewed") // nolint:wrapcheck
	}

	review := req.ToModel(booking)

	if err = s.repo.Insert(ctx, review); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("booking was already reviewed") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) Moderate(ctx context.Context, adminID, id string, req dto.ModerateRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Moderate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return failure.NotFound("review not found") // nolint:wrapcheck
	}

	fields := shared.Touch(map[string]any{
		model.FieldStatus:         req.Status,
		model.FieldModerationNote: req.Note,
	}, adminID)

	if _, err = s.repo.UpdateCount(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to moderate review")

		return fmt.Errorf("failed to moderate review: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheDriverRating, review.DriverID)); err != nil {
			log.Error().Err(err).Msg("failed to delete rating cache")
		}
	}()

	return nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) ListForDriver(ctx context.Context, driverID string, params gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForDriver")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sortable(&params)

	return s.list(ctx, params, approved(model.FieldDriverID, driverID))
}

func (s *serviceImpl) ListForVehicle(ctx context.Context, vehicleID string, params gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForVehicle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sortable(&params)

	return s.list(ctx, params, approved(model.FieldVehicleID, vehicleID))
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sortable(&params)

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) DriverRating(ctx context.Context, driverID string) (res dto.RatingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DriverRating")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheDriverRating, driverID)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for driver rating")

		return res, nil
	}

	var rating model.Rating

	if err = s.repo.Aggregate(ctx, ratingExpr, approved(model.FieldDriverID, driverID), &rating); err != nil {
		log.Error().Err(err).Msg("failed to aggregate rating")

		return res, fmt.Errorf("failed to aggregate rating: %w", err)
	}

	res.FromModel(driverID, rating)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rating to cache")
		}
	}()

	return res, nil
}
