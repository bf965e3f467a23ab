package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lankaride/internal/domains/commission/model"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.01, model.Round(1.005, 2))
	assert.Equal(t, 2.68, model.Round(2.675, 2))
	assert.Equal(t, 10.0, model.Round(9.999, 2))
	assert.Equal(t, -1.01, model.Round(-1.005, 2))
	assert.Equal(t, 0.0, model.Round(0, 2))
}

func TestActiveDiscount(t *testing.T) {
	discounts := []model.Discount{
		{ID: "low", Rate: 0.02, StartDate: day(1, 1), EndDate: day(12, 31), Active: true},
		{ID: "high", Rate: 0.05, StartDate: day(3, 1), EndDate: day(3, 31), Active: true},
		{ID: "inactive", Rate: 0.10, StartDate: day(1, 1), EndDate: day(12, 31), Active: false},
		{ID: "b-tie", Rate: 0.05, StartDate: day(3, 1), EndDate: day(4, 30), Active: true},
		{ID: "a-tie", Rate: 0.05, StartDate: day(3, 1), EndDate: day(4, 30), Active: true},
	}

	tests := []struct {
		name   string
		start  time.Time
		wantID string
		found  bool
	}{
		{name: "only the yearly discount", start: day(2, 10), wantID: "low", found: true},
		{name: "highest rate wins, ties go to the lower id", start: day(3, 15), wantID: "a-tie", found: true},
		{name: "window end is inclusive", start: day(4, 30), wantID: "a-tie", found: true},
		{name: "inactive discounts never apply", start: day(12, 31), wantID: "low", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := model.ActiveDiscount(discounts, tt.start)

			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}

	_, ok := model.ActiveDiscount(discounts[:1], time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		gross        float64
		base         float64
		discount     *model.Discount
		wantRate     float64
		wantAmount   float64
		wantEarnings float64
	}{
		{
			name:         "base rate only",
			gross:        45000,
			base:         0.15,
			wantRate:     0.15,
			wantAmount:   6750,
			wantEarnings: 38250,
		},
		{
			name:         "discount lowers the rate",
			gross:        45000,
			base:         0.15,
			discount:     &model.Discount{ID: "d1", Rate: 0.05},
			wantRate:     0.10,
			wantAmount:   4500,
			wantEarnings: 40500,
		},
		{
			name:         "discount above base clamps at zero",
			gross:        12000,
			base:         0.15,
			discount:     &model.Discount{ID: "d2", Rate: 0.40},
			wantRate:     0,
			wantAmount:   0,
			wantEarnings: 12000,
		},
		{
			name:         "rounding to cents",
			gross:        333.33,
			base:         0.15,
			wantRate:     0.15,
			wantAmount:   50,
			wantEarnings: 283.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := model.Calculate(tt.gross, tt.base, tt.discount)

			assert.InDelta(t, tt.wantRate, quote.CommissionRate, 1e-9)
			assert.Equal(t, tt.wantAmount, quote.CommissionAmount)
			assert.Equal(t, tt.wantEarnings, quote.DriverEarnings)
			assert.InDelta(t, quote.GrossPrice, quote.CommissionAmount+quote.DriverEarnings, 0.005)
			assert.LessOrEqual(t, quote.DiscountRate, quote.BaseRate)

			if tt.discount != nil {
				assert.Equal(t, tt.discount.ID, *quote.DiscountID)
			} else {
				assert.Nil(t, quote.DiscountID)
			}
		})
	}
}

func TestQuoteFor(t *testing.T) {
	discounts := []model.Discount{{ID: "season", Rate: 0.03, StartDate: day(7, 1), EndDate: day(8, 31), Active: true}}

	inSeason := model.QuoteFor(10000, 0.15, day(8, 31), discounts)
	assert.InDelta(t, 0.12, inSeason.CommissionRate, 1e-9)
	assert.Equal(t, 1200.0, inSeason.CommissionAmount)

	offSeason := model.QuoteFor(10000, 0.15, day(9, 1), discounts)
	assert.Nil(t, offSeason.DiscountID)
	assert.Equal(t, 1500.0, offSeason.CommissionAmount)
}
