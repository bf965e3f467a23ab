package shared_test

import (
	"context"
	"errors"
	"lankaride/shared"
	"lankaride/shared/cache/mocks"
	"lankaride/shared/constant"
	"lankaride/shared/dto"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: boolPtr(true)},
		{input: "0", expected: boolPtr(false)},
		{input: "F", expected: boolPtr(false)},
		{input: "random", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToNumbers(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToInt(""))
	assert.Nil(t, shared.ConvertStringToInt("four"))
	assert.Equal(t, 4, *shared.ConvertStringToInt(" 4 "))

	assert.Nil(t, shared.ConvertStringToFloat("abc"))
	assert.InDelta(t, 2500.5, *shared.ConvertStringToFloat("2500.5"), 0.0001)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		expected     int
	}{
		{name: "no data", total: 0, limit: 10, expected: 1},
		{name: "exact pages", total: 20, limit: 10, expected: 2},
		{name: "partial page", total: 21, limit: 10, expected: 3},
		{name: "zero limit", total: 5, limit: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateVehicle struct {
		Make     string  `db:"make"`
		Seats    int     `db:"seats"`
		Price    float64 `db:"daily_price"`
		Internal string
	}

	fields := shared.TransformFields(updateVehicle{Make: "Toyota", Internal: "skip"}, "driver-1")

	assert.Equal(t, "Toyota", fields["make"])
	assert.NotContains(t, fields, "seats")
	assert.NotContains(t, fields, "daily_price")
	assert.Equal(t, "driver-1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestFilterEq(t *testing.T) {
	group := shared.FilterEq("bookings", "status", "pending", "vehicle_id", "v-1")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.status = :status AND bookings.vehicle_id = :vehicle_id)", where)
	assert.Equal(t, map[string]any{"status": "pending", "vehicle_id": "v-1"}, args)
}

func TestFilterOverlap(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	group := shared.FilterOverlap("bookings", "start_date", "end_date", start, end)
	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.start_date <= :overlap_start_date AND bookings.end_date >= :overlap_end_date)", where)
	assert.Equal(t, end, args["overlap_start_date"])
	assert.Equal(t, start, args["overlap_end_date"])
}

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name                       string
		startA, endA, startB, endB time.Time
		expected                   bool
	}{
		{name: "disjoint", startA: day(1), endA: day(3), startB: day(4), endB: day(6), expected: false},
		{name: "touching edge is inclusive", startA: day(1), endA: day(3), startB: day(3), endB: day(6), expected: true},
		{name: "contained", startA: day(1), endA: day(10), startB: day(4), endB: day(6), expected: true},
		{name: "single day same", startA: day(2), endA: day(2), startB: day(2), endB: day(2), expected: true},
		{name: "b before a", startA: day(5), endA: day(8), startB: day(1), endB: day(4), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.Overlaps(tt.startA, tt.endA, tt.startB, tt.endB))
		})
	}
}

func TestInclusiveDays(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, shared.InclusiveDays(start, start))
	assert.Equal(t, 5, shared.InclusiveDays(start, start.AddDate(0, 0, 4)))
	assert.Equal(t, 0, shared.InclusiveDays(start, start.AddDate(0, 0, -1)))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "vehicle:get:abc", shared.BuildCacheKey("vehicle:get", "abc"))
	assert.Equal(t, "vehicle:get", shared.BuildCacheKey("vehicle:get"))

	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterEq("vehicles", "status", "approved")

	first := shared.BuildCacheKeyWithQuery("vehicle:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("vehicle:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("vehicle:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "vehicle:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "booking:gets:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redisCache, "booking:gets")
}

func TestUserFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleDriver)

	userID, role := shared.UserFromContext(ctx)

	assert.Equal(t, "u-1", userID)
	assert.Equal(t, constant.RoleDriver, role)

	userID, role = shared.UserFromContext(context.Background())
	assert.Empty(t, userID)
	assert.Empty(t, role)
}

func TestPqViolations(t *testing.T) {
	unique := &pq.Error{Code: constant.PqErrorCodeUniqueViolation}
	exclusion := &pq.Error{Code: constant.PqErrorCodeExclusionViolation}

	assert.True(t, shared.IsUniqueViolation(errors.Join(errors.New("insert"), unique)))
	assert.False(t, shared.IsUniqueViolation(exclusion))
	assert.True(t, shared.IsExclusionViolation(exclusion))
	assert.False(t, shared.IsExclusionViolation(errors.New("plain")))
	assert.True(t, shared.IsFkViolation(&pq.Error{Code: constant.PqErrorCodeFkViolation}))
	assert.False(t, shared.IsFkViolation(unique))
}

func boolPtr(b bool) *bool {
	return &b
}
