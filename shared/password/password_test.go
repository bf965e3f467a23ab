package password_test

import (
	"lankaride/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "traveler password", input: "colombo-to-kandy"},
		{name: "unicode password", input: "ශ්‍රී ලංකා 123"},
		{name: "exactly max length", input: strings.Repeat("a", password.MaxLength)},
		{name: "empty password", input: "", wantErr: password.ErrEmptyPassword},
		{name: "too long", input: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.HashWithCost(tt.input, bcrypt.MinCost)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NoError(t, password.Verify(tt.input, hash))
		})
	}
}

func TestHash_DefaultCost(t *testing.T) {
	hash, err := password.Hash("galle-fort")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)
}

func TestVerify(t *testing.T) {
	hash, err := password.HashWithCost("ella-rock", bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		hash    string
		wantErr error
	}{
		{name: "match", input: "ella-rock", hash: hash},
		{name: "mismatch", input: "sigiriya", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", input: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", input: "ella-rock", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", input: "ella-rock", hash: "not-a-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.input, tt.hash)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.HashWithCost("mirissa", bcrypt.MinCost)
	require.NoError(t, err)

	second, err := password.HashWithCost("mirissa", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNeedsRehash(t *testing.T) {
	hash, err := password.HashWithCost("nuwara-eliya", bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, password.NeedsRehash(hash, bcrypt.MinCost))
	assert.True(t, password.NeedsRehash(hash, bcrypt.MinCost+1))
	assert.True(t, password.NeedsRehash("garbage", bcrypt.MinCost))
}
