package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lankaride/config"
	"lankaride/infras/jwt"
	jwtMocks "lankaride/infras/jwt/mocks"
	"lankaride/infras/otel/mocks"
	"lankaride/internal/domains/auth/model/dto"
	"lankaride/internal/domains/auth/service"
	notifMocks "lankaride/internal/domains/notification/mocks"
	notifModel "lankaride/internal/domains/notification/model"
	userMocks "lankaride/internal/domains/user/mocks"
	userModel "lankaride/internal/domains/user/model"
	"lankaride/shared/cache"
	cacheMocks "lankaride/shared/cache/mocks"
	"lankaride/shared/constant"
	"lankaride/shared/failure"
	gModel "lankaride/shared/model"
	"lankaride/shared/token"
)

// "password" hashed with bcrypt cost 10.
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

type fixture struct {
	userRepo *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
	cache    *cacheMocks.MockRedisCache
	notifier *notifMocks.MockNotifier
	svc      service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.FrontendURL = "https://lankaride.lk"
	cfg.Marketplace.VerificationTTLMinutes = 1440
	cfg.Marketplace.ResetTTLMinutes = 60

	f := fixture{
		userRepo: userMocks.NewMockUser(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		notifier: notifMocks.NewMockNotifier(ctrl),
	}

	f.svc = service.New(f.userRepo, cfg, mocks.NewOtel(), f.jwt, f.cache, f.notifier)

	return f
}

func validUser() userModel.User {
	return userModel.User{
		ID:         "user-id-123",
		Email:      "test@example.com",
		Password:   passwordHash,
		Role:       constant.RoleGuest,
		FullName:   "Test User",
		IsVerified: true,
		Active:     true,
		Metadata:   gModel.NewMetadata(constant.ContextSystem),
	}
}

func popInto(userID string) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		if ptr, ok := value.(*string); ok {
			*ptr = userID
		}

		return nil
	}
}

func TestAuthService_Register(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "driver registration issues a verification link",
			req: dto.RegisterRequest{
				Email:    "Kamal@Example.com",
				Password: "password123",
				FullName: "Kamal",
				Role:     constant.RoleDriver,
			},
			setupMock: func() {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, "kamal@example.com", user.Email)
						assert.Equal(t, userModel.DriverStatusPending, user.DriverStatus)
						assert.NotEqual(t, "password123", user.Password)

						return nil
					})
				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), 1440*60).
					DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
						assert.True(t, strings.HasPrefix(key, "auth:verify:"))
						assert.NotEmpty(t, value)

						return nil
					})
				f.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...notifModel.Event) {
						assert.Equal(t, notifModel.TypeEmailVerification, events[0].Type)

						link := events[0].Get(notifModel.DataLink)
						assert.True(t, strings.HasPrefix(link, "https://lankaride.lk/verify-email?token="))
					})
			},
		},
		{
			name: "duplicate email",
			req:  dto.RegisterRequest{Email: "test@example.com", Password: "password123", FullName: "Test"},
			setupMock: func() {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "token store failure does not fail registration",
			req:  dto.RegisterRequest{Email: "nimal@example.com", Password: "password123", FullName: "Nimal"},
			setupMock: func() {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
		},
		{
			name: "insert failure",
			req:  dto.RegisterRequest{Email: "nimal@example.com", Password: "password123", FullName: "Nimal"},
			setupMock: func() {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Register(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
			}
		})
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	f := newFixture(t)

	raw, digest, err := token.New()
	assert.NoError(t, err)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "consumes the token",
			setupMock: func() {
				f.cache.EXPECT().Pop(gomock.Any(), "auth:verify:"+digest, gomock.Any()).DoAndReturn(popInto("user-id-123"))
				f.userRepo.EXPECT().
					UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) (int64, error) {
						assert.Equal(t, true, fields[userModel.FieldIsVerified])

						return 1, nil
					})
			},
		},
		{
			name: "expired or reused token",
			setupMock: func() {
				f.cache.EXPECT().Pop(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("failed to pop cache value: %w", cache.Nil))
			},
			wantErr: true,
		},
		{
			name: "user vanished",
			setupMock: func() {
				f.cache.EXPECT().Pop(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(popInto("user-id-123"))
				f.userRepo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.VerifyEmail(context.Background(), dto.VerifyEmailRequest{Token: raw})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_ResendVerification(t *testing.T) {
	f := newFixture(t)

	unverified := validUser()
	unverified.IsVerified = false

	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
	assert.NoError(t, f.svc.ResendVerification(context.Background(), dto.EmailRequest{Email: "nobody@example.com"}))

	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
	assert.NoError(t, f.svc.ResendVerification(context.Background(), dto.EmailRequest{Email: "test@example.com"}))

	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unverified, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), "user-id-123", gomock.Any()).Return(nil)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
	assert.NoError(t, f.svc.ResendVerification(context.Background(), dto.EmailRequest{Email: "test@example.com"}))
}

func TestAuthService_ForgotPassword(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		user      userModel.User
		setupMock func()
	}{
		{
			name:      "unknown email answers the same",
			user:      userModel.User{},
			setupMock: func() {},
		},
		{
			name: "mails a reset link",
			user: validUser(),
			setupMock: func() {
				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), "user-id-123", 60*60).
					DoAndReturn(func(_ context.Context, key string, _ any, _ int) error {
						assert.True(t, strings.HasPrefix(key, "auth:reset:"))

						return nil
					})
				f.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...notifModel.Event) {
						assert.Equal(t, notifModel.TypePasswordReset, events[0].Type)
						assert.Contains(t, events[0].Get(notifModel.DataLink), "/reset-password?token=")
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.user, nil)
			tt.setupMock()

			assert.NoError(t, f.svc.ForgotPassword(context.Background(), dto.EmailRequest{Email: "test@example.com"}))
		})
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	f := newFixture(t)

	raw, digest, err := token.New()
	assert.NoError(t, err)

	f.cache.EXPECT().Pop(gomock.Any(), "auth:reset:"+digest, gomock.Any()).DoAndReturn(popInto("user-id-123"))
	f.userRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			hashed, ok := fields[userModel.FieldPassword].(string)
			assert.True(t, ok)
			assert.True(t, strings.HasPrefix(hashed, "$2a$"))

			return nil
		})

	assert.NoError(t, f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: raw, NewPassword: "newpassword"}))

	f.cache.EXPECT().Pop(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

	err = f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: raw, NewPassword: "newpassword"})
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)

	user := validUser()

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().
					GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nonexistent@example.com", Password: "password"},
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				inactive := user
				inactive.Active = false

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "unverified user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				unverified := user
				unverified.IsVerified = false

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unverified, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().
					GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).
					Return(nil, errors.New("token generation failed"))
			},
			wantErr:  true,
			wantCode: 500,
		},
		{
			name: "update last login error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().
					GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
				assert.Equal(t, constant.RoleGuest, result.Role)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	f := newFixture(t)

	claims := &jwt.Claims{UserID: "user-id-123", Type: jwt.RefreshToken}
	inactive := validUser()
	inactive.Active = false

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "rotates the pair",
			setupMock: func() {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims, nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh").Return(&jwt.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)
			},
		},
		{
			name: "invalid token",
			setupMock: func() {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantErr: true,
		},
		{
			name: "deactivated account",
			setupMock: func() {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims, nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 401, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "a", res.AccessToken)
			}
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful password change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrongpassword", NewPassword: "newpassword123"},
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "update error",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func() {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.ChangePassword(context.Background(), tt.req, "user-id-123")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)

	access := &jwt.Claims{UserID: "user-id-123", TokenID: "access-id", Type: jwt.AccessToken}
	refresh := &jwt.Claims{UserID: "user-id-123", TokenID: "refresh-id", Type: jwt.RefreshToken}
	foreign := &jwt.Claims{UserID: "someone-else", TokenID: "other-id", Type: jwt.RefreshToken}

	tests := []struct {
		name      string
		req       dto.LogoutRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "revokes both tokens",
			req:  dto.LogoutRequest{RefreshToken: "refresh"},
			setupMock: func() {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "access", jwt.AccessToken).Return(access, nil)
				f.jwt.EXPECT().Revoke(gomock.Any(), access).Return(nil)
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(refresh, nil)
				f.jwt.EXPECT().Revoke(gomock.Any(), refresh).Return(nil)
			},
		},
		{
			name: "ignores a refresh token of another user",
			req:  dto.LogoutRequest{RefreshToken: "refresh"},
			setupMock: func() {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "access", jwt.AccessToken).Return(access, nil)
				f.jwt.EXPECT().Revoke(gomock.Any(), access).Return(nil)
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(foreign, nil)
			},
		},
		{
			name: "invalid access token",
			setupMock: func() {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "access", jwt.AccessToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: true,
		},
		{
			name: "revocation store failure",
			setupMock: func() {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "access", jwt.AccessToken).Return(access, nil)
				f.jwt.EXPECT().Revoke(gomock.Any(), access).Return(errors.New("redis down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Logout(context.Background(), "access", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
