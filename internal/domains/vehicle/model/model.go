package model

import (
	"fmt"
	"lankaride/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "vehicles"
	EntityName = "vehicle"

	FieldID           = "id"
	FieldDriverID     = "driver_id"
	FieldMake         = "make"
	FieldModel        = "model"
	FieldYear         = "year"
	FieldType         = "type"
	FieldSeats        = "seats"
	FieldPlateNumber  = "plate_number"
	FieldPricePerDay  = "price_per_day"
	FieldDescription  = "description"
	FieldFeatures     = "features"
	FieldImages       = "images"
	FieldDistrict     = "district"
	FieldStatus       = "status"
	FieldStatusReason = "status_reason"
	FieldActive       = "active"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeCar     = "car"
	TypeVan     = "van"
	TypeSUV     = "suv"
	TypeMinibus = "minibus"
	TypeBus     = "bus"
	TypeTuk     = "tuk"
)

type Vehicle struct {
	ID           string         `db:"id"`
	DriverID     string         `db:"driver_id"`
	Make         string         `db:"make"`
	Model        string         `db:"model"`
	Year         int            `db:"year"`
	Type         string         `db:"type"`
	Seats        int            `db:"seats"`
	PlateNumber  string         `db:"plate_number"`
	PricePerDay  float64        `db:"price_per_day"`
	Description  string         `db:"description"`
	Features     pq.StringArray `db:"features"`
	Images       pq.StringArray `db:"images"`
	District     string         `db:"district"`
	Status       string         `db:"status"`
	StatusReason string         `db:"status_reason"`
	Active       bool           `db:"active"`
	DriverName   string         `db:"driver_name"   table:"users" column:"full_name"`
	DriverEmail  string         `db:"driver_email"  table:"users" column:"email"`
	DriverStatus string         `db:"driver_status" table:"users" column:"driver_status"`
	DriverActive bool           `db:"driver_active" table:"users" column:"active"`
	model.Metadata
}

func (Vehicle) GetJoinQuery() string {
	return "JOIN users ON users.id = vehicles.driver_id"
}

func (v Vehicle) Title() string {
	return fmt.Sprintf("%s %s (%s)", v.Make, v.Model, v.PlateNumber)
}

// Bookable reports whether travelers may book or be offered the vehicle.
func (v Vehicle) Bookable() bool {
	return v.Status == StatusApproved && v.Active && v.DriverActive && v.DriverStatus == StatusApproved
}
