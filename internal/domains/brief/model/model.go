package model

import (
	"lankaride/shared/model"
	"time"
)

const (
	TableName  = "briefs"
	EntityName = "brief"

	FieldID          = "id"
	FieldTravelerID  = "traveler_id"
	FieldTitle       = "title"
	FieldPickup      = "pickup"
	FieldDestination = "destination"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldPassengers  = "passengers"
	FieldVehicleType = "vehicle_type"
	FieldBudget      = "budget"
	FieldNotes       = "notes"
	FieldStatus      = "status"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Brief is a trip request posted by a traveler for drivers to answer with offers.
type Brief struct {
	ID           string    `db:"id"`
	TravelerID   string    `db:"traveler_id"`
	Title        string    `db:"title"`
	Pickup       string    `db:"pickup"`
	Destination  string    `db:"destination"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Passengers   int       `db:"passengers"`
	VehicleType  string    `db:"vehicle_type"`
	Budget       float64   `db:"budget"`
	Notes        string    `db:"notes"`
	Status       string    `db:"status"`
	TravelerName string    `db:"traveler_name" table:"users" column:"full_name"`
	model.Metadata
}

func (Brief) GetJoinQuery() string {
	return "JOIN users ON users.id = briefs.traveler_id"
}

func (b Brief) IsOpen() bool {
	return b.Status == StatusOpen
}
