package dto

import (
	"lankaride/shared/constant"
	"lankaride/shared/model"
	"lankaride/shared/timezone"
)

// Metadata is the audit block returned with admin-facing resources.
// Empty actors are omitted so rows created by migrations stay terse.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func MetadataFrom(source model.Metadata) Metadata {
	return Metadata{
		CreatedAt:  timezone.Format(source.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(source.ModifiedAt, constant.DateFormat),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = MetadataFrom(source)
}
