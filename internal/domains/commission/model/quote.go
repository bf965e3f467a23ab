package model

import (
	"math"
	"time"
)

const (
	moneyPlaces = 2
	// nudges values like 1.005, stored as 1.00499..., to the expected side.
	roundingEpsilon = 1e-9
)

// Quote is the commission split of one gross price.
type Quote struct {
	GrossPrice       float64
	BaseRate         float64
	DiscountID       *string
	DiscountRate     float64
	CommissionRate   float64
	CommissionAmount float64
	DriverEarnings   float64
}

// Round rounds half away from zero to the given decimal places.
func Round(value float64, places int) float64 {
	pow := math.Pow(10, float64(places))

	return math.Round(value*pow+math.Copysign(roundingEpsilon, value)) / pow
}

func clamp(value, low, high float64) float64 {
	return math.Min(math.Max(value, low), high)
}

// ActiveDiscount picks the highest rate among the discounts covering start.
// Ties go to the discount that started first, then to the lower id.
func ActiveDiscount(discounts []Discount, start time.Time) (Discount, bool) {
	var (
		best  Discount
		found bool
	)

	for _, discount := range discounts {
		if !discount.Covers(start) {
			continue
		}

		switch {
		case !found, discount.Rate > best.Rate:
			best, found = discount, true
		case discount.Rate == best.Rate && discount.StartDate.Before(best.StartDate):
			best = discount
		case discount.Rate == best.Rate && discount.StartDate.Equal(best.StartDate) && discount.ID < best.ID:
			best = discount
		}
	}

	return best, found
}

// Calculate applies the base rate net of an optional discount to gross.
// The discount never takes the commission below zero.
func Calculate(gross, baseRate float64, discount *Discount) Quote {
	baseRate = clamp(baseRate, 0, 1)
	gross = Round(math.Max(gross, 0), moneyPlaces)

	quote := Quote{
		GrossPrice: gross,
		BaseRate:   baseRate,
	}

	if discount != nil {
		id := discount.ID
		quote.DiscountID = &id
		quote.DiscountRate = clamp(discount.Rate, 0, baseRate)
	}

	quote.CommissionRate = clamp(baseRate-math.Min(quote.DiscountRate, baseRate), 0, baseRate)
	quote.CommissionAmount = Round(gross*quote.CommissionRate, moneyPlaces)
	quote.DriverEarnings = Round(gross-quote.CommissionAmount, moneyPlaces)

	return quote
}

// QuoteFor resolves the active discount for start and calculates the split.
func QuoteFor(gross, baseRate float64, start time.Time, discounts []Discount) Quote {
	if discount, ok := ActiveDiscount(discounts, start); ok {
		return Calculate(gross, baseRate, &discount)
	}

	return Calculate(gross, baseRate, nil)
}
