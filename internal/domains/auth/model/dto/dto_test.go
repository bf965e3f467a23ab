package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lankaride/infras/jwt"
	"lankaride/internal/domains/auth/model/dto"
	userModel "lankaride/internal/domains/user/model"
	"lankaride/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(3600), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	tests := []struct {
		name             string
		req              dto.RegisterRequest
		wantRole         string
		wantDriverStatus string
	}{
		{
			name:             "defaults to traveler",
			req:              dto.RegisterRequest{Email: " Nimal@Example.COM ", FullName: " Nimal "},
			wantRole:         constant.RoleGuest,
			wantDriverStatus: constant.Empty,
		},
		{
			name:             "driver starts pending",
			req:              dto.RegisterRequest{Email: "kamal@example.com", FullName: "Kamal", Role: constant.RoleDriver},
			wantRole:         constant.RoleDriver,
			wantDriverStatus: userModel.DriverStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.req.ToUserModel(constant.ContextSelf, "hashed")

			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.Equal(t, tt.wantDriverStatus, user.DriverStatus)
			assert.Equal(t, "hashed", user.Password)
			assert.False(t, user.IsVerified)
			assert.True(t, user.Active)
			assert.Equal(t, constant.ContextSelf, user.CreatedBy)
		})
	}

	user := tests[0].req.ToUserModel(constant.ContextSelf, "hashed")
	assert.Equal(t, "nimal@example.com", user.Email)
	assert.Equal(t, "Nimal", user.FullName)
}
