package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=User=MockUserService

import (
	"context"
	"fmt"
	"lankaride/config"
	"lankaride/infras/otel"
	"lankaride/infras/s3"
	notifModel "lankaride/internal/domains/notification/model"
	notifService "lankaride/internal/domains/notification/service"
	"lankaride/internal/domains/user/model"
	"lankaride/internal/domains/user/model/dto"
	"lankaride/internal/domains/user/repository"
	"lankaride/shared"
	"lankaride/shared/cache"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"mime/multipart"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser       = "user:get"
	cacheGetAllUser    = "user:gets"
	cacheGetDriver     = "driver:get"
	cacheGetAllDrivers = "driver:gets"
)

type User interface {
	GetProfile(ctx context.Context, userID string) (dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) error
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (dto.UploadResponse, error)
	UploadLicence(ctx context.Context, userID string, req dto.UploadLicenceRequest) error

	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	SetActive(ctx context.Context, id string, req dto.SetActiveRequest) error
	SetDriverStatus(ctx context.Context, id string, req dto.SetDriverStatusRequest) error
	Stats(ctx context.Context) (dto.StatsResponse, error)

	ListDrivers(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPublicDriversResponse, error)
	GetPublicDriver(ctx context.Context, id string) (dto.PublicDriverResponse, error)
}

type serviceImpl struct {
	repo     repository.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
	notifier notifService.Notifier
}

func New(
	repo repository.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	notifier notifService.Notifier,
) User {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
		notifier: notifier,
	}
}

// FilterApprovedDrivers narrows a query to drivers travelers may see.
func FilterApprovedDrivers() gDto.FilterGroup {
	return shared.FilterEq(model.TableName,
		model.FieldRole, constant.RoleDriver,
		model.FieldDriverStatus, model.DriverStatusApproved,
		model.FieldActive, true,
	)
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("userID", id).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDriver, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete driver cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheGetAllDrivers)
	}()
}

// invalidateListings drops cached vehicle pages, which filter on the driver's state.
func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CacheVehicleSearch)
		shared.InvalidateCaches(c, s.cache, constant.CacheVehicleGet)
	}()
}

func (s *serviceImpl) GetProfile(ctx context.Context, userID string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.find(ctx, userID)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := shared.TransformFields(req, userID)

	affected, err := s.repo.UpdateCount(ctx, fields, shared.FilterByID(userID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return fmt.Errorf("failed to update profile: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	s.invalidate(ctx, userID)

	return nil
}

func (s *serviceImpl) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadAvatar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.find(ctx, userID)
	if err != nil {
		return res, err
	}

	url, err := s.s3.UploadFile(ctx, s3.DirAvatars, file)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload avatar")

		return res, fmt.Errorf("failed to upload avatar: %w", err)
	}

	fields := shared.Touch(map[string]any{model.FieldProfileImage: url}, userID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(userID, model.FieldID, model.TableName)); err != nil {
		s.removeObject(ctx, url)

		return res, fmt.Errorf("failed to save avatar: %w", err)
	}

	if user.ProfileImage != constant.Empty {
		s.removeObject(ctx, user.ProfileImage)
	}

	s.invalidate(ctx, userID)

	res.URL = url

	return res, nil
}

func (s *serviceImpl) UploadLicence(ctx context.Context, userID string, req dto.UploadLicenceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadLicence")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.find(ctx, userID)
	if err != nil {
		return err
	}

	if !user.IsDriver() {
		return failure.Forbidden("only drivers can submit a licence") // nolint:wrapcheck
	}

	url, err := s.s3.UploadFile(ctx, s3.DirLicences, req.Image)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload licence")

		return fmt.Errorf("failed to upload licence: %w", err)
	}

	// A new licence always goes back to review, including after an approval.
	fields := shared.Touch(map[string]any{
		model.FieldLicenceNumber: req.LicenceNumber,
		model.FieldLicenceImage:  url,
		model.FieldDriverStatus:  model.DriverStatusPending,
		model.FieldStatusReason:  constant.Empty,
	}, userID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(userID, model.FieldID, model.TableName)); err != nil {
		s.removeObject(ctx, url)

		return fmt.Errorf("failed to save licence: %w", err)
	}

	if user.LicenceImage != constant.Empty {
		s.removeObject(ctx, user.LicenceImage)
	}

	s.invalidate(ctx, userID)

	return nil
}

func (s *serviceImpl) removeObject(ctx context.Context, url string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.s3.DeleteFile(c, s.s3.ObjectKeyFromURL(url)); err != nil {
			log.Error().Err(err).Str("url", url).Msg("failed to delete object")
		}
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SetActive(ctx context.Context, id string, req dto.SetActiveRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	adminID, _ := shared.UserFromContext(ctx)
	if adminID == id {
		return failure.BadRequestFromString("you cannot change your own account state") // nolint:wrapcheck
	}

	fields := shared.Touch(map[string]any{model.FieldActive: *req.Active}, adminID)

	affected, err := s.repo.UpdateCount(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update user state")

		return fmt.Errorf("failed to update user state: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)
	s.invalidateListings(ctx)

	return nil
}

func (s *serviceImpl) SetDriverStatus(ctx context.Context, id string, req dto.SetDriverStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetDriverStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !user.IsDriver() {
		return failure.BadRequestFromString("user is not a driver") // nolint:wrapcheck
	}

	if req.Status == model.DriverStatusApproved && user.LicenceNumber == constant.Empty {
		return failure.BadRequestFromString("driver has not submitted a licence") // nolint:wrapcheck
	}

	adminID, _ := shared.UserFromContext(ctx)

	reason := req.Reason
	if req.Status == model.DriverStatusApproved {
		reason = constant.Empty
	}

	fields := shared.Touch(map[string]any{
		model.FieldDriverStatus: req.Status,
		model.FieldStatusReason: reason,
	}, adminID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update driver status")

		return fmt.Errorf("failed to update driver status: %w", err)
	}

	s.invalidate(ctx, id)
	s.invalidateListings(ctx)

	s.notifier.Notify(ctx, notifModel.Event{
		Type:           notifModel.TypeDriverStatus,
		RecipientEmail: user.Email,
		RecipientName:  user.FullName,
		Data: map[string]string{
			notifModel.DataStatus: req.Status,
			notifModel.DataReason: reason,
		},
	})

	return nil
}

func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	counts, err := s.repo.CountByRole(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	res.FromModel(counts)

	return res, nil
}

func (s *serviceImpl) ListDrivers(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPublicDriversResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListDrivers")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{FilterApprovedDrivers()},
	}

	if len(filter.Filters) > 0 {
		scoped.Filters = append(scoped.Filters, filter)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDrivers, params, scoped)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for drivers")

		return res, nil
	}

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count drivers")

		return res, fmt.Errorf("failed to count drivers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get drivers")

		return res, fmt.Errorf("failed to get drivers: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save drivers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetPublicDriver(ctx context.Context, id string) (res dto.PublicDriverResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPublicDriver")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetDriver, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !user.CanOperate() {
		return res, failure.NotFound("driver not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save driver to cache")
		}
	}()

	return res, nil
}
