package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Commission=MockCommissionService

import (
	"context"
	"fmt"
	"lankaride/config"
	"lankaride/infras/otel"
	"lankaride/internal/domains/commission/model"
	"lankaride/internal/domains/commission/model/dto"
	"lankaride/internal/domains/commission/repository"
	"lankaride/shared"
	"lankaride/shared/cache"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"lankaride/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetDiscount     = "commission:get"
	cacheGetAllDiscount  = "commission:gets"
	cacheActiveDiscounts = "commission:active"
)

type Commission interface {
	Create(ctx context.Context, req dto.CreateDiscountRequest) (dto.DiscountResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateDiscountRequest) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.DiscountResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDiscountsResponse, error)
	// Resolve returns the commission split for a booking of gross starting on start.
	Resolve(ctx context.Context, gross float64, start time.Time) (model.Quote, error)
}

type serviceImpl struct {
	repo  repository.Discount
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Discount, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Commission {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func parseWindow(startValue, endValue string) (start, end time.Time, err error) {
	start, err = timezone.ParseDate(startValue)
	if err != nil {
		return start, end, failure.BadRequestFromString("invalid start_date") // nolint:wrapcheck
	}

	end, err = timezone.ParseDate(endValue)
	if err != nil {
		return start, end, failure.BadRequestFromString("invalid end_date") // nolint:wrapcheck
	}

	if end.Before(start) {
		return start, end, failure.BadRequestFromString("end_date must not be before start_date") // nolint:wrapcheck
	}

	return start, end, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDiscount, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete discount cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDiscount)
		shared.InvalidateCaches(c, s.cache, cacheActiveDiscounts)
	}()
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Discount, error) {
	discount, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get discount")

		return discount, fmt.Errorf("failed to get discount: %w", err)
	}

	if discount.ID == constant.Empty {
		return discount, failure.NotFound("discount not found") // nolint:wrapcheck
	}

	return discount, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDiscountRequest) (res dto.DiscountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return res, err
	}

	user, _ := shared.UserFromContext(ctx)
	discount := req.ToModel(user, start, end)

	if err = s.repo.Insert(ctx, discount); err != nil {
		log.Error().Err(err).Msg("failed to create discount")

		return res, fmt.Errorf("failed to create discount: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(discount)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateDiscountRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	startValue := timezone.FormatDate(current.StartDate)
	if req.StartDate != constant.Empty {
		startValue = req.StartDate
	}

	endValue := timezone.FormatDate(current.EndDate)
	if req.EndDate != constant.Empty {
		endValue = req.EndDate
	}

	start, end, err := parseWindow(startValue, endValue)
	if err != nil {
		return err
	}

	fields := map[string]any{
		model.FieldStartDate: start,
		model.FieldEndDate:   end,
	}

	if req.Name != constant.Empty {
		fields[model.FieldName] = req.Name
	}

	if req.Rate != nil {
		fields[model.FieldRate] = *req.Rate
	}

	if req.Active != nil {
		fields[model.FieldActive] = *req.Active
	}

	user, _ := shared.UserFromContext(ctx)

	if err = s.repo.Update(ctx, shared.Touch(fields, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update discount")

		return fmt.Errorf("failed to update discount: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete discount")

		return fmt.Errorf("failed to delete discount: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DiscountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetDiscount, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for discount")

		return res, nil
	}

	discount, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(discount)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save discount to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDiscountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDiscount, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for discounts")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count discounts")

		return res, fmt.Errorf("failed to count discounts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get discounts")

		return res, fmt.Errorf("failed to get discounts: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save discounts to cache")
		}
	}()

	return res, nil
}

// activeOn loads the discounts whose window contains day, cached per calendar day.
func (s *serviceImpl) activeOn(ctx context.Context, day time.Time) ([]model.Discount, error) {
	dayValue := timezone.FormatDate(day)
	cacheKey := shared.BuildCacheKey(cacheActiveDiscounts, dayValue)

	var discounts []model.Discount
	if err := s.cache.Get(ctx, cacheKey, &discounts); err == nil {
		return discounts, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStartDate, Value: dayValue, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldEndDate, Value: dayValue, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		},
	}

	discounts, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load active discounts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, discounts, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save active discounts to cache")
		}
	}()

	return discounts, nil
}

func (s *serviceImpl) Resolve(ctx context.Context, gross float64, start time.Time) (quote model.Quote, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	discounts, err := s.activeOn(ctx, start)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve commission")

		return quote, err
	}

	return model.QuoteFor(gross, s.cfg.Marketplace.CommissionBaseRate, start, discounts), nil
}
