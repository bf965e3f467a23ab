package dto

import (
	"lankaride/internal/domains/availability/model"
	"lankaride/shared/constant"
	gModel "lankaride/shared/model"
	"lankaride/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type AddRequest struct {
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date"   validate:"required,date"`
	Status    string `json:"status"     validate:"omitempty,oneof=unavailable available"`
	Reason    string `json:"reason"     validate:"omitempty,max=500"`
}

func (a *AddRequest) ToModel(driverID, vehicleID string, start, end time.Time) model.Availability {
	status := a.Status
	if status == constant.Empty {
		status = model.StatusUnavailable
	}

	return model.Availability{
		ID:        uuid.NewString(),
		VehicleID: vehicleID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		Reason:    a.Reason,
		Metadata:  gModel.NewMetadata(driverID),
	}
}

type AvailabilityResponse struct {
	ID        string `json:"id"`
	VehicleID string `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

func (r *AvailabilityResponse) FromModel(model model.Availability) {
	r.ID = model.ID
	r.VehicleID = model.VehicleID
	r.StartDate = timezone.FormatDate(model.StartDate)
	r.EndDate = timezone.FormatDate(model.EndDate)
	r.Status = model.Status
	r.Reason = model.Reason
}

func FromModels(models []model.Availability) []AvailabilityResponse {
	res := make([]AvailabilityResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
