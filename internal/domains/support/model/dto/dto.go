package dto

import (
	"lankaride/internal/domains/support/model"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	gModel "lankaride/shared/model"
	"strings"

	"github.com/google/uuid"
)

type CreateTicketRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=150"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ToModel links the ticket to userID when the sender is signed in.
func (r *CreateTicketRequest) ToModel(userID string) model.Ticket {
	ticket := model.Ticket{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Subject:  strings.TrimSpace(r.Subject),
		Message:  strings.TrimSpace(r.Message),
		Status:   model.StatusOpen,
		Metadata: gModel.NewMetadata(r.Email),
	}

	if userID != constant.Empty {
		ticket.UserID = &userID
		ticket.Metadata = gModel.NewMetadata(userID)
	}

	return ticket
}

type ResolveRequest struct {
	Note string `json:"note" validate:"omitempty,max=2000"`
}

type TicketResponse struct {
	ID             string  `json:"id"`
	UserID         *string `json:"user_id,omitempty"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Subject        string  `json:"subject"`
	Message        string  `json:"message"`
	Status         string  `json:"status"`
	ResolutionNote string  `json:"resolution_note,omitempty"`
	gDto.Metadata
}

func (r *TicketResponse) FromModel(model model.Ticket) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Name = model.Name
	r.Email = model.Email
	r.Subject = model.Subject
	r.Message = model.Message
	r.Status = model.Status
	r.ResolutionNote = model.ResolutionNote
	r.Metadata.FromModel(model.Metadata)
}

type GetTicketsResponse struct {
	Tickets   []TicketResponse `json:"tickets"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetTicketsResponse) FromModels(models []model.Ticket, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tickets = make([]TicketResponse, len(models))
	for i, mod := range models {
		r.Tickets[i].FromModel(mod)
	}
}
