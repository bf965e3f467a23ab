package dto

import (
	"lankaride/internal/domains/chat/model"
	"lankaride/shared"
	"lankaride/shared/timezone"
	"time"
)

type StartConversationRequest struct {
	DriverID string `json:"driver_id" validate:"required,uuid"`
}

type SendMessageRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

type SendOfferRequest struct {
	VehicleID string  `json:"vehicle_id" validate:"required,uuid"`
	Price     float64 `json:"price"      validate:"required,gt=0"`
	StartDate string  `json:"start_date" validate:"required,date"`
	EndDate   string  `json:"end_date"   validate:"required,date"`
	Body      string  `json:"body"       validate:"omitempty,max=2000"`
}

type RespondOfferRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

type OfferResponse struct {
	VehicleID string  `json:"vehicle_id"`
	Price     float64 `json:"price"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status"`
	BookingID *string `json:"booking_id,omitempty"`
}

type MessageResponse struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id"`
	SenderID       string         `json:"sender_id"`
	Type           string         `json:"type"`
	Body           string         `json:"body"`
	Offer          *OfferResponse `json:"offer,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (r *MessageResponse) FromModel(m model.Message) {
	r.ID = m.ID
	r.ConversationID = m.ConversationID
	r.SenderID = m.SenderID
	r.Type = m.Type
	r.Body = m.Body
	r.CreatedAt = m.CreatedAt
	r.Offer = nil

	if !m.IsOffer() {
		return
	}

	r.Offer = &OfferResponse{
		Status:    *m.OfferStatus,
		BookingID: m.OfferBookingID,
	}

	if m.OfferVehicleID != nil {
		r.Offer.VehicleID = *m.OfferVehicleID
	}

	if m.OfferPrice != nil {
		r.Offer.Price = *m.OfferPrice
	}

	if m.OfferStartDate != nil {
		r.Offer.StartDate = timezone.FormatDate(*m.OfferStartDate)
	}

	if m.OfferEndDate != nil {
		r.Offer.EndDate = timezone.FormatDate(*m.OfferEndDate)
	}
}

type GetMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetMessagesResponse) FromModels(models []model.Message, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]MessageResponse, len(models))
	for i, mod := range models {
		r.Messages[i].FromModel(mod)
	}
}

type ConversationResponse struct {
	ID            string     `json:"id"`
	TravelerID    string     `json:"traveler_id"`
	TravelerName  string     `json:"traveler_name"`
	TravelerImage string     `json:"traveler_image"`
	DriverID      string     `json:"driver_id"`
	DriverName    string     `json:"driver_name"`
	DriverImage   string     `json:"driver_image"`
	BriefID       *string    `json:"brief_id,omitempty"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	Unread        int        `json:"unread"`
	CreatedAt     time.Time  `json:"created_at"`
}

// FromModel fills the response as seen by viewerID, whose unread counter is reported.
func (r *ConversationResponse) FromModel(c model.Conversation, viewerID string) {
	r.ID = c.ID
	r.TravelerID = c.TravelerID
	r.TravelerName = c.TravelerName
	r.TravelerImage = c.TravelerAvatar
	r.DriverID = c.DriverID
	r.DriverName = c.DriverName
	r.DriverImage = c.DriverAvatar
	r.BriefID = c.BriefID
	r.LastMessage = c.LastMessage
	r.LastMessageAt = c.LastMessageAt
	r.Unread = c.UnreadFor(viewerID)
	r.CreatedAt = c.CreatedAt
}

type GetConversationsResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetConversationsResponse) FromModels(models []model.Conversation, viewerID string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Conversations = make([]ConversationResponse, len(models))
	for i, mod := range models {
		r.Conversations[i].FromModel(mod, viewerID)
	}
}

type UnreadResponse struct {
	Total int `json:"total"`
}
