package model

import "lankaride/shared/model"

const (
	TableName  = "support_tickets"
	EntityName = "support ticket"

	FieldID             = "id"
	FieldUserID         = "user_id"
	FieldName           = "name"
	FieldEmail          = "email"
	FieldSubject        = "subject"
	FieldMessage        = "message"
	FieldStatus         = "status"
	FieldResolutionNote = "resolution_note"
)

const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

type Ticket struct {
	ID             string  `db:"id"`
	UserID         *string `db:"user_id"`
	Name           string  `db:"name"`
	Email          string  `db:"email"`
	Subject        string  `db:"subject"`
	Message        string  `db:"message"`
	Status         string  `db:"status"`
	ResolutionNote string  `db:"resolution_note"`
	model.Metadata
}
