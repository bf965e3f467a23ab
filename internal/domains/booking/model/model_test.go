package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lankaride/internal/domains/booking/model"
	commissionModel "lankaride/internal/domains/commission/model"
	"lankaride/shared/timezone"
)

func TestBooking_ApplyQuote(t *testing.T) {
	discount := commissionModel.Discount{ID: "d1", Rate: 0.05}
	withDiscount := commissionModel.Calculate(30000, 0.15, &discount)
	baseOnly := commissionModel.Calculate(30000, 0.15, nil)

	var booking model.Booking

	assert.True(t, booking.ApplyQuote(baseOnly), "first application always changes a zero booking")
	assert.False(t, booking.ApplyQuote(baseOnly), "same quote is not a change")
	assert.Equal(t, 4500.0, booking.CommissionAmount)
	assert.Equal(t, 25500.0, booking.DriverEarnings)

	assert.True(t, booking.ApplyQuote(withDiscount), "a new discount is a change")
	assert.Equal(t, "d1", *booking.DiscountID)

	again := commissionModel.Calculate(30000, 0.15, &commissionModel.Discount{ID: "d1", Rate: 0.05})
	assert.False(t, booking.ApplyQuote(again), "equal discount ids compare by value")

	assert.True(t, booking.ApplyQuote(baseOnly), "dropping the discount is a change")
	assert.Nil(t, booking.DiscountID)

	fields := booking.CommissionFields()
	assert.Equal(t, 4500.0, fields[model.FieldCommissionAmount])
	assert.Contains(t, fields, model.FieldDiscountID)
}

func TestBooking_IsActive(t *testing.T) {
	for status, want := range map[string]bool{
		model.StatusPending:   true,
		model.StatusConfirmed: true,
		model.StatusCancelled: false,
		model.StatusRejected:  false,
	} {
		assert.Equal(t, want, model.Booking{Status: status}.IsActive(), status)
	}
}

func TestBooking_Ended(t *testing.T) {
	// DATE columns come back from lib/pq as UTC midnight.
	booking := model.Booking{EndDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	local := timezone.GetLocation()

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "evening before the end date", now: time.Date(2026, 3, 9, 23, 59, 0, 0, local), want: false},
		{name: "early morning of the end date", now: time.Date(2026, 3, 10, 2, 0, 0, 0, local), want: true},
		{name: "after the end date", now: time.Date(2026, 3, 11, 9, 0, 0, 0, local), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Ended(tt.now))
		})
	}
}
