package dto

import (
	"lankaride/internal/domains/commission/model"
	"lankaride/shared"
	gDto "lankaride/shared/dto"
	gModel "lankaride/shared/model"
	"lankaride/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateDiscountRequest struct {
	Name      string  `json:"name"       validate:"required,min=3,max=100"`
	Rate      float64 `json:"rate"       validate:"gt=0,lte=1"`
	StartDate string  `json:"start_date" validate:"required,date"`
	EndDate   string  `json:"end_date"   validate:"required,date"`
	Active    *bool   `json:"active"     validate:"omitempty"`
}

func (c *CreateDiscountRequest) ToModel(user string, start, end time.Time) model.Discount {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Discount{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Rate:      c.Rate,
		StartDate: start,
		EndDate:   end,
		Active:    active,
		Metadata:  gModel.NewMetadata(user),
	}
}

type UpdateDiscountRequest struct {
	Name      string   `json:"name"       validate:"omitempty,min=3,max=100"`
	Rate      *float64 `json:"rate"       validate:"omitempty,gt=0,lte=1"`
	StartDate string   `json:"start_date" validate:"omitempty,date"`
	EndDate   string   `json:"end_date"   validate:"omitempty,date"`
	Active    *bool    `json:"active"     validate:"omitempty"`
}

type DiscountResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Rate      float64 `json:"rate"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *DiscountResponse) FromModel(model model.Discount) {
	r.ID = model.ID
	r.Name = model.Name
	r.Rate = model.Rate
	r.StartDate = timezone.FormatDate(model.StartDate)
	r.EndDate = timezone.FormatDate(model.EndDate)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetDiscountsResponse struct {
	Discounts []DiscountResponse `json:"discounts"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDiscountsResponse) FromModels(models []model.Discount, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Discounts = make([]DiscountResponse, len(models))
	for i, mod := range models {
		r.Discounts[i].FromModel(mod)
	}
}

type QuoteResponse struct {
	GrossPrice       float64 `json:"gross_price"`
	BaseRate         float64 `json:"base_rate"`
	DiscountID       *string `json:"discount_id,omitempty"`
	DiscountRate     float64 `json:"discount_rate"`
	CommissionRate   float64 `json:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount"`
	DriverEarnings   float64 `json:"driver_earnings"`
}

func (r *QuoteResponse) FromQuote(quote model.Quote) {
	r.GrossPrice = quote.GrossPrice
	r.BaseRate = quote.BaseRate
	r.DiscountID = quote.DiscountID
	r.DiscountRate = quote.DiscountRate
	r.CommissionRate = quote.CommissionRate
	r.CommissionAmount = quote.CommissionAmount
	r.DriverEarnings = quote.DriverEarnings
}
