package dto

import (
	"lankaride/internal/domains/booking/model"
	commissionModel "lankaride/internal/domains/commission/model"
	commissionDto "lankaride/internal/domains/commission/model/dto"
	"lankaride/shared"
	gDto "lankaride/shared/dto"
	gModel "lankaride/shared/model"
	"lankaride/shared/timezone"
	"time"

	"github.com/google/uuid"
)

// DateRangeRequest is an inclusive pair of calendar days.
type DateRangeRequest struct {
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date"   validate:"required,date"`
}

func (d *DateRangeRequest) Parse() (start, end time.Time, err error) {
	if start, err = timezone.ParseDate(d.StartDate); err != nil {
		return start, end, err
	}

	if end, err = timezone.ParseDate(d.EndDate); err != nil {
		return start, end, err
	}

	return start, end, nil
}

type QuoteRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required,uuid"`
	DateRangeRequest
}

type CreateBookingRequest struct {
	VehicleID      string `json:"vehicle_id"      validate:"required,uuid"`
	PickupLocation string `json:"pickup_location" validate:"omitempty,max=150"`
	Notes          string `json:"notes"           validate:"omitempty,max=1000"`
	DateRangeRequest
}

// OfferBooking carries an accepted chat offer into a booking.
type OfferBooking struct {
	MessageID  string
	VehicleID  string
	DriverID   string
	GrossPrice float64
	StartDate  time.Time
	EndDate    time.Time
}

type ReasonRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// Draft is a booking before persistence, priced and split but without an id.
type Draft struct {
	VehicleID      string
	DriverID       string
	TravelerID     string
	OfferMessageID *string
	StartDate      time.Time
	EndDate        time.Time
	PricePerDay    float64
	PickupLocation string
	Notes          string
}

func (d Draft) ToModel(days int, quote commissionModel.Quote) model.Booking {
	booking := model.Booking{
		ID:             uuid.NewString(),
		VehicleID:      d.VehicleID,
		DriverID:       d.DriverID,
		TravelerID:     d.TravelerID,
		OfferMessageID: d.OfferMessageID,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Days:           days,
		PricePerDay:    d.PricePerDay,
		Status:         model.StatusPending,
		PickupLocation: d.PickupLocation,
		Notes:          d.Notes,
		Metadata:       gModel.NewMetadata(d.TravelerID),
	}

	booking.ApplyQuote(quote)

	return booking
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Days      int    `json:"days"`
	Reason    string `json:"reason,omitempty"`
}

type QuoteResponse struct {
	VehicleID   string  `json:"vehicle_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Days        int     `json:"days"`
	PricePerDay float64 `json:"price_per_day"`
	commissionDto.QuoteResponse
}

type BookingResponse struct {
	ID               string  `json:"id"`
	VehicleID        string  `json:"vehicle_id"`
	Vehicle          string  `json:"vehicle"`
	DriverID         string  `json:"driver_id"`
	DriverName       string  `json:"driver_name"`
	TravelerID       string  `json:"traveler_id"`
	TravelerName     string  `json:"traveler_name"`
	OfferMessageID   *string `json:"offer_message_id,omitempty"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Days             int     `json:"days"`
	PricePerDay      float64 `json:"price_per_day"`
	BaseRate         float64 `json:"base_rate"`
	GrossPrice       float64 `json:"gross_price"`
	DiscountID       *string `json:"discount_id,omitempty"`
	DiscountRate     float64 `json:"discount_rate"`
	CommissionRate   float64 `json:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount"`
	DriverEarnings   float64 `json:"driver_earnings"`
	Status           string  `json:"status"`
	PickupLocation   string  `json:"pickup_location"`
	Notes            string  `json:"notes"`
	CancelReason     string  `json:"cancel_reason,omitempty"`
	CancelledBy      string  `json:"cancelled_by,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.VehicleID = model.VehicleID
	r.Vehicle = model.VehicleTitle()
	r.DriverID = model.DriverID
	r.DriverName = model.DriverName
	r.TravelerID = model.TravelerID
	r.TravelerName = model.TravelerName
	r.OfferMessageID = model.OfferMessageID
	r.StartDate = timezone.FormatDate(model.StartDate)
	r.EndDate = timezone.FormatDate(model.EndDate)
	r.Days = model.Days
	r.PricePerDay = model.PricePerDay
	r.GrossPrice = model.GrossPrice
	r.BaseRate = model.BaseRate
	r.DiscountID = model.DiscountID
	r.DiscountRate = model.DiscountRate
	r.CommissionRate = model.CommissionRate
	r.CommissionAmount = model.CommissionAmount
	r.DriverEarnings = model.DriverEarnings
	r.Status = model.Status
	r.PickupLocation = model.PickupLocation
	r.Notes = model.Notes
	r.CancelReason = model.CancelReason
	r.CancelledBy = model.CancelledBy
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// Totals is the aggregate row scanned by the admin summary.
type Totals struct {
	Count            int     `db:"count"`
	GrossPrice       float64 `db:"gross_price"`
	CommissionAmount float64 `db:"commission_amount"`
	DriverEarnings   float64 `db:"driver_earnings"`
}

type SummaryResponse struct {
	Total            int            `json:"total"`
	ByStatus         map[string]int `json:"by_status"`
	ConfirmedGross   float64        `json:"confirmed_gross"`
	CommissionEarned float64        `json:"commission_earned"`
	DriverEarnings   float64        `json:"driver_earnings"`
}
