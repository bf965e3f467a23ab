package model

import (
	"lankaride/shared/model"
	"time"
)

const (
	TableName  = "availabilities"
	EntityName = "availability"

	FieldID        = "id"
	FieldVehicleID = "vehicle_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldStatus    = "status"
	FieldReason    = "reason"
)

const (
	StatusUnavailable = "unavailable"
	StatusAvailable   = "available"
)

// Availability is a driver maintained window on a vehicle calendar.
// Only unavailable windows block bookings.
type Availability struct {
	ID        string    `db:"id"`
	VehicleID string    `db:"vehicle_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	Reason    string    `db:"reason"`
	model.Metadata
}

func (a Availability) Blocks() bool {
	return a.Status == StatusUnavailable
}
