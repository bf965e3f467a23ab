package model

import (
	"lankaride/shared/model"
	"lankaride/shared/timezone"
	"time"
)

const (
	TableName  = "commission_discounts"
	EntityName = "commission_discount"

	FieldID        = "id"
	FieldName      = "name"
	FieldRate      = "rate"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldActive    = "active"
)

// Discount lowers the platform rate for bookings starting inside its window.
// Rate is a fraction in the same unit as the base rate.
type Discount struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Rate      float64   `db:"rate"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Active    bool      `db:"active"`
	model.Metadata
}

// Covers reports whether the discount applies to a booking starting on day. Both ends are inclusive.
func (d Discount) Covers(day time.Time) bool {
	day = timezone.CalendarDay(day)

	return d.Active &&
		!day.Before(timezone.CalendarDay(d.StartDate)) &&
		!day.After(timezone.CalendarDay(d.EndDate))
}
