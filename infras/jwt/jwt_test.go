package jwt_test

import (
	"context"
	"errors"
	"lankaride/config"
	"lankaride/infras/jwt"
	"lankaride/shared/cache/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "lankaride"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)
	svc := jwt.New(newConfig(), redisCache)
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "traveler@example.com", "guest")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	redisCache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "guest", claims.Role)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Revoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)
	svc := jwt.New(newConfig(), redisCache)
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "driver@example.com", "driver")
	require.NoError(t, err)

	redisCache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrRevokedToken)
}

func TestValidateToken_CacheDownStillAccepts(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)
	svc := jwt.New(newConfig(), redisCache)
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "driver@example.com", "driver")
	require.NoError(t, err)

	redisCache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "driver", claims.Role)
}

func TestRefreshTokens_RevokesPresentedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)
	svc := jwt.New(newConfig(), redisCache)
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "traveler@example.com", "guest")
	require.NoError(t, err)

	redisCache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil)
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), "user-1", gomock.Any()).Return(nil)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, refreshed.RefreshToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}
