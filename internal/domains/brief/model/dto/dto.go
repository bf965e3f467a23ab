package dto

import (
	"lankaride/internal/domains/brief/model"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	gModel "lankaride/shared/model"
	"lankaride/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBriefRequest struct {
	Title       string  `json:"title"        validate:"required,max=150"`
	Pickup      string  `json:"pickup"       validate:"required,max=150"`
	Destination string  `json:"destination"  validate:"required,max=150"`
	StartDate   string  `json:"start_date"   validate:"required,date"`
	EndDate     string  `json:"end_date"     validate:"required,date"`
	Passengers  int     `json:"passengers"   validate:"required,min=1,max=60"`
	VehicleType string  `json:"vehicle_type" validate:"omitempty,oneof=car van suv minibus bus tuk"`
	Budget      float64 `json:"budget"       validate:"omitempty,gte=0"`
	Notes       string  `json:"notes"        validate:"omitempty,max=2000"`
}

func (r *CreateBriefRequest) ToModel(travelerID string, start, end time.Time) model.Brief {
	return model.Brief{
		ID:          uuid.NewString(),
		TravelerID:  travelerID,
		Title:       strings.TrimSpace(r.Title),
		Pickup:      strings.TrimSpace(r.Pickup),
		Destination: strings.TrimSpace(r.Destination),
		StartDate:   start,
		EndDate:     end,
		Passengers:  r.Passengers,
		VehicleType: r.VehicleType,
		Budget:      r.Budget,
		Notes:       r.Notes,
		Status:      model.StatusOpen,
		Metadata:    gModel.NewMetadata(travelerID),
	}
}

// ListRequest narrows the open briefs a driver browses.
type ListRequest struct {
	VehicleType   string `validate:"omitempty,oneof=car van suv minibus bus tuk"`
	Destination   string `validate:"omitempty,max=150"`
	MinPassengers *int   `validate:"omitempty,min=1"`
}

// ToFilter keeps open briefs that have not started yet and match the request.
func (r *ListRequest) ToFilter() gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldStatus, Value: model.StatusOpen, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStartDate, Value: timezone.Today(), Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
	}

	if r.VehicleType != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field: model.FieldVehicleType, Value: r.VehicleType, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if r.Destination != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field: model.FieldDestination, Value: r.Destination, Operator: gDto.FilterOperatorLike, Table: model.TableName,
		})
	}

	if r.MinPassengers != nil {
		filters = append(filters, gDto.Filter{
			Field: model.FieldPassengers, Value: *r.MinPassengers, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName,
		})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

type BriefResponse struct {
	ID           string  `json:"id"`
	TravelerID   string  `json:"traveler_id"`
	TravelerName string  `json:"traveler_name"`
	Title        string  `json:"title"`
	Pickup       string  `json:"pickup"`
	Destination  string  `json:"destination"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Passengers   int     `json:"passengers"`
	VehicleType  string  `json:"vehicle_type,omitempty"`
	Budget       float64 `json:"budget"`
	Notes        string  `json:"notes"`
	Status       string  `json:"status"`
	gDto.Metadata
}

func (r *BriefResponse) FromModel(model model.Brief) {
	r.ID = model.ID
	r.TravelerID = model.TravelerID
	r.TravelerName = model.TravelerName
	r.Title = model.Title
	r.Pickup = model.Pickup
	r.Destination = model.Destination
	r.StartDate = timezone.FormatDate(model.StartDate)
	r.EndDate = timezone.FormatDate(model.EndDate)
	r.Days = shared.InclusiveDays(model.StartDate, model.EndDate)
	r.Passengers = model.Passengers
	r.VehicleType = model.VehicleType
	r.Budget = model.Budget
	r.Notes = model.Notes
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBriefsResponse struct {
	Briefs    []BriefResponse `json:"briefs"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetBriefsResponse) FromModels(models []model.Brief, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Briefs = make([]BriefResponse, len(models))
	for i, mod := range models {
		r.Briefs[i].FromModel(mod)
	}
}
