package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"lankaride/shared/cache"
	"lankaride/shared/constant"
	"lankaride/shared/dto"
	"lankaride/shared/timezone"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

const cacheKeySeparator = ":"

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// ConvertStringToInt returns nil for empty or non numeric input.
func ConvertStringToInt(value string) *int {
	if value == "" {
		return nil
	}

	intValue, err := cast.ToIntE(strings.TrimSpace(value))
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to int")

		return nil
	}

	return &intValue
}

// ConvertStringToFloat returns nil for empty or non numeric input.
func ConvertStringToFloat(value string) *float64 {
	if value == "" {
		return nil
	}

	floatValue, err := cast.ToFloat64E(strings.TrimSpace(value))
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to float")

		return nil
	}

	return &floatValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

// Touch returns the audit columns for a hand-built update map.
func Touch(fields map[string]any, username string) map[string]any {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = username

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.And(dto.Eq(table, fieldID, id))
}

// FilterEq builds an AND group of equality filters on the same table.
// Pairs are field, value, field, value...
func FilterEq(table string, pairs ...any) dto.FilterGroup {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	for i := 0; i+1 < len(pairs); i += 2 {
		field, _ := pairs[i].(string)

		group.Filters = append(group.Filters, dto.Eq(table, field, pairs[i+1]))
	}

	return group
}

// FilterOverlap matches rows whose [startField, endField] range intersects [start, end].
// Both bounds are inclusive: rowStart <= end AND start <= rowEnd.
func FilterOverlap(table, startField, endField string, start, end time.Time) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				ArgName:  "overlap_" + startField,
				Field:    startField,
				Value:    end,
				Operator: dto.FilterOperatorLessEq,
				Table:    table,
			},
			dto.Filter{
				ArgName:  "overlap_" + endField,
				Field:    endField,
				Value:    start,
				Operator: dto.FilterOperatorGreaterEq,
				Table:    table,
			},
		},
	}
}

// Overlaps reports whether two inclusive calendar day ranges intersect.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	startA, endA = timezone.CalendarDay(startA), timezone.CalendarDay(endA)
	startB, endB = timezone.CalendarDay(startB), timezone.CalendarDay(endB)

	return !startA.After(endB) && !startB.After(endA)
}

// BuildCacheKey joins the prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the paging params and filter tree.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup, parts ...string) string {
	raw, err := json.Marshal(struct {
		Params dto.QueryParams
		Filter dto.FilterGroup
	}{params, filter})
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v%+v", params, filter))
	}

	sum := sha256.Sum256(raw)

	return BuildCacheKey(prefix, append(parts, hex.EncodeToString(sum[:8]))...)
}

// InvalidateCaches removes every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// UserFromContext returns the authenticated user id and role set by the auth middleware.
func UserFromContext(ctx context.Context) (userID, role string) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return userID, role
}

func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}

func IsFkViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}

func IsExclusionViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeExclusionViolation
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return constant.Empty
}

// InclusiveDays counts calendar days in [start, end]. Returns 0 when end is before start.
func InclusiveDays(start, end time.Time) int {
	start, end = timezone.CalendarDay(start), timezone.CalendarDay(end)
	if end.Before(start) {
		return 0
	}

	return int(math.Round(end.Sub(start).Hours()/constant.HoursPerDay)) + 1
}
