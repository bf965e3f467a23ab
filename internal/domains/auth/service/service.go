package service

import (
	"context"
	"errors"
	"fmt"
	"lankaride/config"
	"lankaride/infras/jwt"
	"lankaride/infras/otel"
	"lankaride/internal/domains/auth/model/dto"
	notifModel "lankaride/internal/domains/notification/model"
	notifService "lankaride/internal/domains/notification/service"
	userModel "lankaride/internal/domains/user/model"
	userRepo "lankaride/internal/domains/user/repository"
	"lankaride/shared"
	"lankaride/shared/cache"
	"lankaride/shared/constant"
	"lankaride/shared/failure"
	"lankaride/shared/password"
	"lankaride/shared/timezone"
	"lankaride/shared/token"

	"github.com/rs/zerolog/log"
)

const (
	cacheVerifyToken = "auth:verify"
	cacheResetToken  = "auth:reset"

	verifyPath = "/verify-email?token="
	resetPath  = "/reset-password?token="
)

var errInvalidToken = failure.BadRequestFromString("invalid or expired token")

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) error
	ResendVerification(ctx context.Context, req dto.EmailRequest) error
	ForgotPassword(ctx context.Context, req dto.EmailRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
	Logout(ctx context.Context, accessToken string, req dto.LogoutRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	cache      cache.RedisCache
	notifier   notifService.Notifier
}

func New(
	userRepo userRepo.User,
	cfg *config.Config,
	otel otel.Otel,
	jwt jwt.JWT,
	cache cache.RedisCache,
	notifier notifService.Notifier,
) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		cache:      cache,
		notifier:   notifier,
	}
}

func (s *serviceImpl) findByEmail(ctx context.Context, email string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterEq(userModel.TableName, userModel.FieldEmail, dto.NormalizeEmail(email)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// issueToken stores the digest of a fresh single-use token and mails the raw value as a link.
func (s *serviceImpl) issueToken(ctx context.Context, user userModel.User, prefix, path, eventType string, ttlMinutes int) error {
	raw, digest, err := token.New()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	key := shared.BuildCacheKey(prefix, digest)
	if err = s.cache.Save(ctx, key, user.ID, ttlMinutes*constant.MinutesToSeconds); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	s.notifier.Notify(ctx, notifModel.Event{
		Type:           eventType,
		RecipientEmail: user.Email,
		RecipientName:  user.FullName,
		Data:           map[string]string{notifModel.DataLink: s.cfg.App.FrontendURL + path + raw},
	})

	return nil
}

// consumeToken returns the user id bound to the token and deletes it.
func (s *serviceImpl) consumeToken(ctx context.Context, prefix, raw string) (string, error) {
	var userID string

	err := s.cache.Pop(ctx, shared.BuildCacheKey(prefix, token.Digest(raw)), &userID)
	if err != nil {
		if errors.Is(err, cache.Nil) {
			return constant.Empty, errInvalidToken
		}

		return constant.Empty, fmt.Errorf("failed to read token: %w", err)
	}

	if userID == constant.Empty {
		return constant.Empty, errInvalidToken
	}

	return userID, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	emailFilter := shared.FilterEq(userModel.TableName, userModel.FieldEmail, dto.NormalizeEmail(req.Email))

	exists, err := s.userRepo.Exist(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(constant.ContextSelf, hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("email already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	// The account exists at this point; a lost verification mail can be resent.
	if err := s.issueToken(ctx, user, cacheVerifyToken, verifyPath, notifModel.TypeEmailVerification,
		s.cfg.Marketplace.VerificationTTLMinutes); err != nil {
		log.Error().Err(err).Str("userID", user.ID).Msg("failed to issue verification token")
	}

	res.ID = user.ID
	res.Email = user.Email
	res.Role = user.Role

	return res, nil
}

func (s *serviceImpl) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyEmail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, err := s.consumeToken(ctx, cacheVerifyToken, req.Token)
	if err != nil {
		return err
	}

	fields := shared.Touch(map[string]any{userModel.FieldIsVerified: true}, userID)

	affected, err := s.userRepo.UpdateCount(ctx, fields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to verify user")

		return fmt.Errorf("failed to verify user: %w", err)
	}

	if affected == 0 {
		return errInvalidToken
	}

	return nil
}

func (s *serviceImpl) ResendVerification(ctx context.Context, req dto.EmailRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResendVerification")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	// Unknown or already verified addresses get the same answer as valid ones.
	if user.ID == constant.Empty || user.IsVerified || !user.Active {
		return nil
	}

	if err = s.issueToken(ctx, user, cacheVerifyToken, verifyPath, notifModel.TypeEmailVerification,
		s.cfg.Marketplace.VerificationTTLMinutes); err != nil {
		log.Error().Err(err).Msg("failed to issue verification token")

		return err
	}

	return nil
}

func (s *serviceImpl) ForgotPassword(ctx context.Context, req dto.EmailRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForgotPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if user.ID == constant.Empty || !user.Active {
		log.Info().Msg("password reset requested for unknown or inactive account")

		return nil
	}

	if err = s.issueToken(ctx, user, cacheResetToken, resetPath, notifModel.TypePasswordReset,
		s.cfg.Marketplace.ResetTTLMinutes); err != nil {
		log.Error().Err(err).Msg("failed to issue reset token")

		return err
	}

	return nil
}

func (s *serviceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, err := s.consumeToken(ctx, cacheResetToken, req.Token)
	if err != nil {
		return err
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, userID)

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to reset password")

		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return res, err
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString("invalid email or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid email or password") // nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.BadRequestFromString("user account is deactivated") // nolint:wrapcheck
	}

	if !user.IsVerified {
		return res, failure.Forbidden("email address is not verified") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	updatedFields := shared.TransformFields(lastLogin, user.ID)

	if err := s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.Role = user.Role

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("invalid refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return res, failure.Unauthorized("account is no longer active") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, userID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) Logout(ctx context.Context, accessToken string, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, accessToken, jwt.AccessToken)
	if err != nil {
		return failure.Unauthorized("invalid access token") // nolint:wrapcheck
	}

	if err = s.jwtService.Revoke(ctx, claims); err != nil {
		log.Error().Err(err).Msg("failed to revoke access token")

		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if req.RefreshToken == constant.Empty {
		return nil
	}

	refreshClaims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil || refreshClaims.UserID != claims.UserID {
		log.Warn().Str("userID", claims.UserID).Msg("ignoring refresh token on logout")

		return nil
	}

	if err = s.jwtService.Revoke(ctx, refreshClaims); err != nil {
		log.Error().Err(err).Msg("failed to revoke refresh token")

		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}
