package model

import (
	"lankaride/shared/model"
	"time"
)

const (
	ConversationTableName  = "conversations"
	ConversationEntityName = "conversation"

	FieldID             = "id"
	FieldTravelerID     = "traveler_id"
	FieldDriverID       = "driver_id"
	FieldBriefID        = "brief_id"
	FieldLastMessage    = "last_message"
	FieldLastMessageAt  = "last_message_at"
	FieldTravelerUnread = "traveler_unread"
	FieldDriverUnread   = "driver_unread"
)

const (
	MessageTableName  = "messages"
	MessageEntityName = "message"

	FieldConversationID = "conversation_id"
	FieldSenderID       = "sender_id"
	FieldType           = "type"
	FieldBody           = "body"
	FieldOfferVehicleID = "offer_vehicle_id"
	FieldOfferPrice     = "offer_price"
	FieldOfferStartDate = "offer_start_date"
	FieldOfferEndDate   = "offer_end_date"
	FieldOfferStatus    = "offer_status"
	FieldOfferBookingID = "offer_booking_id"
)

const (
	MessageTypeText  = "text"
	MessageTypeOffer = "offer"
)

const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusDeclined = "declined"
)

// previewLength bounds the last message copy kept on the conversation.
const previewLength = 120

type Conversation struct {
	ID             string     `db:"id"`
	TravelerID     string     `db:"traveler_id"`
	DriverID       string     `db:"driver_id"`
	BriefID        *string    `db:"brief_id"`
	LastMessage    string     `db:"last_message"`
	LastMessageAt  *time.Time `db:"last_message_at"`
	TravelerUnread int        `db:"traveler_unread"`
	DriverUnread   int        `db:"driver_unread"`
	TravelerName   string     `db:"traveler_name"  table:"travelers" column:"full_name"`
	TravelerAvatar string     `db:"traveler_image" table:"travelers" column:"profile_image"`
	DriverName     string     `db:"driver_name"    table:"drivers"   column:"full_name"`
	DriverAvatar   string     `db:"driver_image"   table:"drivers"   column:"profile_image"`
	model.Metadata
}

func (Conversation) GetJoinQuery() string {
	return "JOIN users AS travelers ON travelers.id = conversations.traveler_id " +
		"JOIN users AS drivers ON drivers.id = conversations.driver_id"
}

func (c Conversation) HasParticipant(userID string) bool {
	return userID != "" && (c.TravelerID == userID || c.DriverID == userID)
}

// Counterpart returns the id of the other participant.
func (c Conversation) Counterpart(userID string) string {
	if c.TravelerID == userID {
		return c.DriverID
	}

	return c.TravelerID
}

// UnreadField is the counter column belonging to userID.
func (c Conversation) UnreadField(userID string) string {
	if c.DriverID == userID {
		return FieldDriverUnread
	}

	return FieldTravelerUnread
}

func (c Conversation) UnreadFor(userID string) int {
	if c.DriverID == userID {
		return c.DriverUnread
	}

	return c.TravelerUnread
}

type Message struct {
	ID             string     `db:"id"`
	ConversationID string     `db:"conversation_id"`
	SenderID       string     `db:"sender_id"`
	Type           string     `db:"type"`
	Body           string     `db:"body"`
	OfferVehicleID *string    `db:"offer_vehicle_id"`
	OfferPrice     *float64   `db:"offer_price"`
	OfferStartDate *time.Time `db:"offer_start_date"`
	OfferEndDate   *time.Time `db:"offer_end_date"`
	OfferStatus    *string    `db:"offer_status"`
	OfferBookingID *string    `db:"offer_booking_id"`
	model.Metadata
}

func (m Message) IsOffer() bool {
	return m.Type == MessageTypeOffer && m.OfferStatus != nil
}

func (m Message) OfferIs(status string) bool {
	return m.IsOffer() && *m.OfferStatus == status
}

// Preview is the conversation list copy of the message.
func (m Message) Preview() string {
	if m.Type == MessageTypeOffer && m.Body == "" {
		return "Sent an offer"
	}

	runes := []rune(m.Body)
	if len(runes) > previewLength {
		return string(runes[:previewLength])
	}

	return m.Body
}
