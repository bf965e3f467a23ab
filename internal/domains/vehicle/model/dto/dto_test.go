package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lankaride/internal/domains/vehicle/model/dto"
)

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "WP CAB-1234", dto.NormalizePlate("  wp   cab-1234 "))
	assert.Equal(t, "", dto.NormalizePlate("   "))
}

func TestSearchRequest_Window(t *testing.T) {
	t.Run("no dates", func(t *testing.T) {
		req := dto.SearchRequest{District: "Ella"}

		_, _, ok, err := req.Window()
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("both dates", func(t *testing.T) {
		req := dto.SearchRequest{StartDate: "2026-12-01", EndDate: "2026-12-04"}

		start, end, ok, err := req.Window()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3, end.Day()-start.Day())
	})

	t.Run("malformed date", func(t *testing.T) {
		req := dto.SearchRequest{StartDate: "01/12/2026", EndDate: "2026-12-04"}

		_, _, _, err := req.Window()
		assert.Error(t, err)
	})
}
