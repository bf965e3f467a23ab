package model

import (
	"lankaride/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID             = "id"
	FieldBookingID      = "booking_id"
	FieldVehicleID      = "vehicle_id"
	FieldDriverID       = "driver_id"
	FieldTravelerID     = "traveler_id"
	FieldRating         = "rating"
	FieldComment        = "comment"
	FieldStatus         = "status"
	FieldModerationNote = "moderation_note"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Review struct {
	ID             string `db:"id"`
	BookingID      string `db:"booking_id"`
	VehicleID      string `db:"vehicle_id"`
	DriverID       string `db:"driver_id"`
	TravelerID     string `db:"traveler_id"`
	Rating         int    `db:"rating"`
	Comment        string `db:"comment"`
	Status         string `db:"status"`
	ModerationNote string `db:"moderation_note"`
	TravelerName   string `db:"traveler_name" table:"users" column:"full_name"`
	model.Metadata
}

func (Review) GetJoinQuery() string {
	return "JOIN users ON users.id = reviews.traveler_id"
}

// Rating is the aggregate row of a driver's approved reviews.
type Rating struct {
	Average float64 `db:"average"`
	Count   int     `db:"count"`
}
