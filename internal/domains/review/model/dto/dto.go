package dto

import (
	bookingModel "lankaride/internal/domains/booking/model"
	"lankaride/internal/domains/review/model"
	"lankaride/shared"
	gDto "lankaride/shared/dto"
	gModel "lankaride/shared/model"
	"math"
	"strings"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

func (r *CreateReviewRequest) ToModel(booking bookingModel.Booking) model.Review {
	return model.Review{
		ID:         uuid.NewString(),
		BookingID:  booking.ID,
		VehicleID:  booking.VehicleID,
		DriverID:   booking.DriverID,
		TravelerID: booking.TravelerID,
		Rating:     r.Rating,
		Comment:    strings.TrimSpace(r.Comment),
		Status:     model.StatusPending,
		Metadata:   gModel.NewMetadata(booking.TravelerID),
	}
}

type ModerateRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Note   string `json:"note"   validate:"omitempty,max=500"`
}

type ReviewResponse struct {
	ID             string `json:"id"`
	BookingID      string `json:"booking_id"`
	VehicleID      string `json:"vehicle_id"`
	DriverID       string `json:"driver_id"`
	TravelerID     string `json:"traveler_id"`
	TravelerName   string `json:"traveler_name"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
	Status         string `json:"status"`
	ModerationNote string `json:"moderation_note,omitempty"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.VehicleID = model.VehicleID
	r.DriverID = model.DriverID
	r.TravelerID = model.TravelerID
	r.TravelerName = model.TravelerName
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Status = model.Status
	r.ModerationNote = model.ModerationNote
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}

type RatingResponse struct {
	DriverID string  `json:"driver_id"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
}

func (r *RatingResponse) FromModel(driverID string, rating model.Rating) {
	r.DriverID = driverID
	r.Average = math.Round(rating.Average*100) / 100
	r.Count = rating.Count
}
