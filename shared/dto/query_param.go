package dto

import (
	"lankaride/shared/constant"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
	// MaxLimit bounds a single page of vehicles, bookings or messages.
	MaxLimit = 100
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

func positive(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0
	}

	return n
}

// FromRequest reads page, limit, sort_by and sort_dir. Invalid values are ignored and
// limit is capped at MaxLimit. With defaultRequest, a missing page or limit gets the default.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := positive(queryParams.Get(constant.RequestParamPage)); page > 0 {
		q.Page = page
	}

	if limit := positive(queryParams.Get(constant.RequestParamLimit)); limit > 0 {
		q.Limit = min(limit, MaxLimit)
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	switch sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = sortDir
	}

	if !defaultRequest {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Sanitize drops a sort column outside the allowed list so it never reaches the ORDER BY clause.
func (q *QueryParams) Sanitize(table string, allowed ...string) {
	if q.SortBy == "" || !slices.Contains(allowed, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}

	if table != "" && !strings.Contains(q.SortBy, ".") {
		q.SortBy = table + "." + q.SortBy
	}
}

// FilterFromRequest builds an AND group of equality filters from the query string.
// Only the listed fields are read and absent values are skipped.
func FilterFromRequest(r *http.Request, table string, fields ...string) FilterGroup {
	queryParams := r.URL.Query()
	group := FilterGroup{Operator: FilterGroupOperatorAnd}

	for _, field := range fields {
		value := strings.TrimSpace(queryParams.Get(field))
		if value == "" {
			continue
		}

		group.Filters = append(group.Filters, Eq(table, field, value))
	}

	return group
}
