package model

import (
	commissionModel "lankaride/internal/domains/commission/model"
	"lankaride/shared/model"
	"lankaride/shared/timezone"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldVehicleID        = "vehicle_id"
	FieldDriverID         = "driver_id"
	FieldTravelerID       = "traveler_id"
	FieldOfferMessageID   = "offer_message_id"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldDays             = "days"
	FieldPricePerDay      = "price_per_day"
	FieldGrossPrice       = "gross_price"
	FieldBaseRate         = "base_rate"
	FieldDiscountID       = "discount_id"
	FieldDiscountRate     = "discount_rate"
	FieldCommissionRate   = "commission_rate"
	FieldCommissionAmount = "commission_amount"
	FieldDriverEarnings   = "driver_earnings"
	FieldStatus           = "status"
	FieldPickupLocation   = "pickup_location"
	FieldNotes            = "notes"
	FieldCancelReason     = "cancel_reason"
	FieldCancelledBy      = "cancelled_by"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// ActiveStatuses hold the vehicle's dates. Cancelled and rejected bookings release them.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

type Booking struct {
	ID               string     `db:"id"`
	VehicleID        string     `db:"vehicle_id"`
	DriverID         string     `db:"driver_id"`
	TravelerID       string     `db:"traveler_id"`
	OfferMessageID   *string    `db:"offer_message_id"`
	StartDate        time.Time  `db:"start_date"`
	EndDate          time.Time  `db:"end_date"`
	Days             int        `db:"days"`
	PricePerDay      float64    `db:"price_per_day"`
	GrossPrice       float64    `db:"gross_price"`
	BaseRate         float64    `db:"base_rate"`
	DiscountID       *string    `db:"discount_id"`
	DiscountRate     float64    `db:"discount_rate"`
	CommissionRate   float64    `db:"commission_rate"`
	CommissionAmount float64    `db:"commission_amount"`
	DriverEarnings   float64    `db:"driver_earnings"`
	Status           string     `db:"status"`
	PickupLocation   string     `db:"pickup_location"`
	Notes            string     `db:"notes"`
	CancelReason     string     `db:"cancel_reason"`
	CancelledBy      string     `db:"cancelled_by"`
	VehicleMake      string     `db:"vehicle_make"   table:"vehicles"  column:"make"`
	VehicleModel     string     `db:"vehicle_model"  table:"vehicles"  column:"model"`
	VehiclePlate     string     `db:"vehicle_plate"  table:"vehicles"  column:"plate_number"`
	TravelerName     string     `db:"traveler_name"  table:"travelers" column:"full_name"`
	TravelerEmail    string     `db:"traveler_email" table:"travelers" column:"email"`
	DriverName       string     `db:"driver_name"    table:"drivers"   column:"full_name"`
	DriverEmail      string     `db:"driver_email"   table:"drivers"   column:"email"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN vehicles ON vehicles.id = bookings.vehicle_id " +
		"JOIN users AS travelers ON travelers.id = bookings.traveler_id " +
		"JOIN users AS drivers ON drivers.id = bookings.driver_id"
}

func (b Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Ended reports whether now is past local midnight of the end date.
func (b Booking) Ended(now time.Time) bool {
	return now.After(timezone.CalendarDay(b.EndDate))
}

func (b Booking) VehicleTitle() string {
	return b.VehicleMake + " " + b.VehicleModel + " (" + b.VehiclePlate + ")"
}

// ApplyQuote copies the commission split onto the booking and reports whether any stored value moved.
func (b *Booking) ApplyQuote(quote commissionModel.Quote) bool {
	changed := b.GrossPrice != quote.GrossPrice ||
		b.BaseRate != quote.BaseRate ||
		!sameID(b.DiscountID, quote.DiscountID) ||
		b.DiscountRate != quote.DiscountRate ||
		b.CommissionRate != quote.CommissionRate ||
		b.CommissionAmount != quote.CommissionAmount ||
		b.DriverEarnings != quote.DriverEarnings

	b.GrossPrice = quote.GrossPrice
	b.BaseRate = quote.BaseRate
	b.DiscountID = quote.DiscountID
	b.DiscountRate = quote.DiscountRate
	b.CommissionRate = quote.CommissionRate
	b.CommissionAmount = quote.CommissionAmount
	b.DriverEarnings = quote.DriverEarnings

	return changed
}

// CommissionFields is the update map for the split written by ApplyQuote.
func (b Booking) CommissionFields() map[string]any {
	return map[string]any{
		FieldGrossPrice:       b.GrossPrice,
		FieldBaseRate:         b.BaseRate,
		FieldDiscountID:       b.DiscountID,
		FieldDiscountRate:     b.DiscountRate,
		FieldCommissionRate:   b.CommissionRate,
		FieldCommissionAmount: b.CommissionAmount,
		FieldDriverEarnings:   b.DriverEarnings,
	}
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
