package dto_test

import (
	"lankaride/shared/constant"
	"lankaride/shared/dto"
	"lankaride/shared/model"
	"lankaride/shared/timezone"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	assert.Equal(t, createdAt.In(timezone.GetLocation()).Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.In(timezone.GetLocation()).Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)
}

func TestMetadataFrom_ZeroTimes(t *testing.T) {
	metadata := dto.MetadataFrom(model.Metadata{})

	assert.Equal(t, dto.Metadata{}, metadata)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          url.Values
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    url.Values{"page": {"2"}, "limit": {"20"}, "sort_by": {"daily_price"}, "sort_dir": {"asc"}},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "daily_price", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			query:          url.Values{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit capped",
			query:    url.Values{"limit": {"5000"}},
			expected: dto.QueryParams{Limit: dto.MaxLimit},
		},
		{
			name:     "invalid values ignored",
			query:    url.Values{"page": {"-1"}, "limit": {"abc"}, "sort_dir": {"sideways"}},
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{RawQuery: tt.query.Encode()}}

			var params dto.QueryParams
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Sanitize(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		expected dto.QueryParams
	}{
		{
			name:     "allowed column is prefixed",
			params:   dto.QueryParams{SortBy: "daily_price", SortDir: dto.SortDirAsc},
			expected: dto.QueryParams{SortBy: "vehicles.daily_price", SortDir: dto.SortDirAsc},
		},
		{
			name:     "unknown column falls back to created_at",
			params:   dto.QueryParams{SortBy: "1; DROP TABLE users"},
			expected: dto.QueryParams{SortBy: "vehicles.created_at", SortDir: constant.DefaultValueSortDir},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.Sanitize("vehicles", "daily_price", "seats")

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn, Table: "bookings"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "traveler_id", Value: "u-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
					dto.Filter{Field: "driver_id", ArgName: "driver", Value: "u-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
				},
			},
			dto.Filter{Value: "bookings.gross_price > :min_gross", Args: map[string]any{"min_gross": 10}, Operator: dto.FilterPlainQuery},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.status IN (:status_0, :status_1)  AND (bookings.traveler_id = :traveler_id OR bookings.driver_id = :driver) AND (bookings.gross_price > :min_gross))", where)
	assert.Equal(t, map[string]any{
		"status_0":    "pending",
		"status_1":    "confirmed",
		"traveler_id": "u-1",
		"driver":      "u-1",
		"min_gross":   10,
	}, args)
}

func TestFilterFromRequest(t *testing.T) {
	query := url.Values{"status": {"pending"}, "driver_id": {" "}, "ignored": {"x"}}
	req := &http.Request{URL: &url.URL{RawQuery: query.Encode()}}

	group := dto.FilterFromRequest(req, "bookings", "status", "driver_id")

	assert.Equal(t, dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
		},
	}, group)

	outer := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: []any{dto.FilterGroup{}, group}}
	where, _ := outer.GetWhereClause()

	assert.Equal(t, "((bookings.status = :status))", where)
}

func TestFilterBuilders(t *testing.T) {
	group := dto.Or(
		dto.And(dto.Eq("vehicles", "district", "Kandy"), dto.In("vehicles", "type", []string{"van", "suv"})),
		dto.Filter{Field: "deleted_at", Operator: dto.FilterIsNull, Table: "vehicles"},
		dto.Filter{Field: "seats", Operator: "unknown"},
		"not a filter",
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "((vehicles.district = :district AND vehicles.type IN (:type_0, :type_1) ) OR vehicles.deleted_at IS NULL)", where)
	assert.Equal(t, map[string]any{"district": "Kandy", "type_0": "van", "type_1": "suv"}, args)
}
