package model

import "time"

const EntityName = "notification"

// Event types. Each one has a mail template in the dispatcher.
const (
	TypeEmailVerification = "email_verification"
	TypePasswordReset     = "password_reset"
	TypeDriverStatus      = "driver_status"
	TypeVehicleStatus     = "vehicle_status"
	TypeBookingRequested  = "booking_requested"
	TypeBookingConfirmed  = "booking_confirmed"
	TypeBookingRejected   = "booking_rejected"
	TypeBookingCancelled  = "booking_cancelled"
	TypeSupportTicket     = "support_ticket"
)

const (
	DataLink      = "link"
	DataStatus    = "status"
	DataReason    = "reason"
	DataVehicle   = "vehicle"
	DataBookingID = "booking_id"
	DataStartDate = "start_date"
	DataEndDate   = "end_date"
	DataTotal     = "total"
	DataSubject   = "subject"
	DataMessage   = "message"
	DataFrom      = "from"
)

type Event struct {
	Type           string            `json:"type"`
	RecipientEmail string            `json:"recipient_email"`
	RecipientName  string            `json:"recipient_name"`
	Data           map[string]string `json:"data,omitempty"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

// Get returns the data value for key, or an empty string.
func (e Event) Get(key string) string {
	if e.Data == nil {
		return ""
	}

	return e.Data[key]
}
