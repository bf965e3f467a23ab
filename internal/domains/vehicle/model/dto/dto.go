package dto

import (
	"lankaride/internal/domains/vehicle/model"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	gModel "lankaride/shared/model"
	"lankaride/shared/timezone"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateVehicleRequest struct {
	Make        string                  `json:"make"          validate:"required,max=50"`
	Model       string                  `json:"model"         validate:"required,max=50"`
	Year        int                     `json:"year"          validate:"required,min=1980,max=2100"`
	Type        string                  `json:"type"          validate:"required,oneof=car van suv minibus bus tuk"`
	Seats       int                     `json:"seats"         validate:"required,min=1,max=60"`
	PlateNumber string                  `json:"plate_number"  validate:"required,min=4,max=20"`
	PricePerDay float64                 `json:"price_per_day" validate:"required,gt=0"`
	Description string                  `json:"description"   validate:"omitempty,max=2000"`
	Features    []string                `json:"features"      validate:"omitempty,max=20,dive,max=50"`
	District    string                  `json:"district"      validate:"required,district"`
	Images      []*multipart.FileHeader `json:"images"        validate:"omitempty,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), " "))
}

func (c *CreateVehicleRequest) ToModel(driverID string, images []string) model.Vehicle {
	features := pq.StringArray{}
	if c.Features != nil {
		features = c.Features
	}

	return model.Vehicle{
		ID:          uuid.NewString(),
		DriverID:    driverID,
		Make:        strings.TrimSpace(c.Make),
		Model:       strings.TrimSpace(c.Model),
		Year:        c.Year,
		Type:        c.Type,
		Seats:       c.Seats,
		PlateNumber: NormalizePlate(c.PlateNumber),
		PricePerDay: c.PricePerDay,
		Description: c.Description,
		Features:    features,
		Images:      images,
		District:    c.District,
		Status:      model.StatusPending,
		Active:      true,
		Metadata:    gModel.NewMetadata(driverID),
	}
}

type UpdateVehicleRequest struct {
	Make        string         `db:"make"          json:"make"          validate:"omitempty,max=50"`
	Model       string         `db:"model"         json:"model"         validate:"omitempty,max=50"`
	Year        int            `db:"year"          json:"year"          validate:"omitempty,min=1980,max=2100"`
	Type        string         `db:"type"          json:"type"          validate:"omitempty,oneof=car van suv minibus bus tuk"`
	Seats       int            `db:"seats"         json:"seats"         validate:"omitempty,min=1,max=60"`
	PlateNumber string         `db:"plate_number"  json:"plate_number"  validate:"omitempty,min=4,max=20"`
	PricePerDay float64        `db:"price_per_day" json:"price_per_day" validate:"omitempty,gt=0"`
	Description string         `db:"description"   json:"description"   validate:"omitempty,max=2000"`
	Features    pq.StringArray `db:"features"      json:"features"      validate:"omitempty,max=20,dive,max=50"`
	District    string         `db:"district"      json:"district"      validate:"omitempty,district"`
	Active      *bool          `db:"active"        json:"active"        validate:"omitempty"`
}

type UploadImagesRequest struct {
	Images []*multipart.FileHeader `json:"images" validate:"required,min=1,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason" validate:"required_if=Status rejected,max=500"`
}

// SearchRequest holds the public search filters. Dates are optional but come as a pair.
type SearchRequest struct {
	District  string   `json:"district"   validate:"omitempty,max=50"`
	Type      string   `json:"type"       validate:"omitempty,oneof=car van suv minibus bus tuk"`
	MinSeats  *int     `json:"min_seats"  validate:"omitempty,min=1"`
	MaxPrice  *float64 `json:"max_price"  validate:"omitempty,gt=0"`
	StartDate string   `json:"start_date" validate:"required_with=EndDate,omitempty,date"`
	EndDate   string   `json:"end_date"   validate:"required_with=StartDate,omitempty,date"`
}

// Window parses the optional date pair. ok is false when no dates were given.
func (s *SearchRequest) Window() (start, end time.Time, ok bool, err error) {
	if s.StartDate == constant.Empty && s.EndDate == constant.Empty {
		return start, end, false, nil
	}

	if start, err = timezone.ParseDate(s.StartDate); err != nil {
		return start, end, false, err
	}

	if end, err = timezone.ParseDate(s.EndDate); err != nil {
		return start, end, false, err
	}

	return start, end, true, nil
}

type VehicleResponse struct {
	ID           string   `json:"id"`
	DriverID     string   `json:"driver_id"`
	DriverName   string   `json:"driver_name"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Type         string   `json:"type"`
	Seats        int      `json:"seats"`
	PlateNumber  string   `json:"plate_number"`
	PricePerDay  float64  `json:"price_per_day"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Images       []string `json:"images"`
	District     string   `json:"district"`
	Status       string   `json:"status"`
	StatusReason string   `json:"status_reason,omitempty"`
	Active       bool     `json:"active"`
	gDto.Metadata
}

func (r *VehicleResponse) FromModel(model model.Vehicle) {
	r.ID = model.ID
	r.DriverID = model.DriverID
	r.DriverName = model.DriverName
	r.Make = model.Make
	r.Model = model.Model
	r.Year = model.Year
	r.Type = model.Type
	r.Seats = model.Seats
	r.PlateNumber = model.PlateNumber
	r.PricePerDay = model.PricePerDay
	r.Description = model.Description
	r.Features = orEmpty(model.Features)
	r.Images = orEmpty(model.Images)
	r.District = model.District
	r.Status = model.Status
	r.StatusReason = model.StatusReason
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetVehiclesResponse struct {
	Vehicles  []VehicleResponse `json:"vehicles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetVehiclesResponse) FromModels(models []model.Vehicle, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vehicles = make([]VehicleResponse, len(models))
	for i, mod := range models {
		r.Vehicles[i].FromModel(mod)
	}
}

func orEmpty(values pq.StringArray) []string {
	if values == nil {
		return []string{}
	}

	return values
}
