package dto

import (
	"lankaride/internal/domains/user/model"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/timezone"
	"mime/multipart"

	"github.com/lib/pq"
)

type UpdateProfileRequest struct {
	FullName  string         `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone     string         `db:"phone"     json:"phone"     validate:"omitempty,e164"`
	Bio       string         `db:"bio"       json:"bio"       validate:"omitempty,max=1000"`
	District  string         `db:"district"  json:"district"  validate:"omitempty,district"`
	Languages pq.StringArray `db:"languages" json:"languages" validate:"omitempty,max=10,dive,min=2,max=30"`
}

type UploadLicenceRequest struct {
	LicenceNumber string                `json:"licence_number" validate:"required,min=5,max=50"`
	Image         *multipart.FileHeader `json:"image"          validate:"required,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
}

type UploadImageRequest struct {
	Image *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type SetDriverStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason" validate:"required_if=Status rejected,max=500"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

// ProfileResponse is what a user sees about themselves.
type ProfileResponse struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	Role          string   `json:"role"`
	FullName      string   `json:"full_name"`
	Phone         string   `json:"phone"`
	ProfileImage  string   `json:"profile_image"`
	Bio           string   `json:"bio"`
	District      string   `json:"district"`
	Languages     []string `json:"languages"`
	IsVerified    bool     `json:"is_verified"`
	LicenceNumber string   `json:"licence_number,omitempty"`
	DriverStatus  string   `json:"driver_status,omitempty"`
	StatusReason  string   `json:"status_reason,omitempty"`
}

func (p *ProfileResponse) FromModel(model model.User) {
	p.ID = model.ID
	p.Email = model.Email
	p.Role = model.Role
	p.FullName = model.FullName
	p.Phone = model.Phone
	p.ProfileImage = model.ProfileImage
	p.Bio = model.Bio
	p.District = model.District
	p.Languages = languages(model.Languages)
	p.IsVerified = model.IsVerified
	p.LicenceNumber = model.LicenceNumber
	p.DriverStatus = model.DriverStatus
	p.StatusReason = model.StatusReason
}

// UserResponse is the admin view, including account state and the licence scan.
type UserResponse struct {
	ProfileResponse
	Active       bool   `json:"active"`
	LicenceImage string `json:"licence_image,omitempty"`
	LastLogin    string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(model model.User) {
	u.ProfileResponse.FromModel(model)
	u.Active = model.Active
	u.LicenceImage = model.LicenceImage

	if model.LastLogin != nil {
		u.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}

	u.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

// PublicDriverResponse never carries contact details. Travelers reach drivers through chat.
type PublicDriverResponse struct {
	ID           string   `json:"id"`
	FullName     string   `json:"full_name"`
	ProfileImage string   `json:"profile_image"`
	Bio          string   `json:"bio"`
	District     string   `json:"district"`
	Languages    []string `json:"languages"`
	MemberSince  string   `json:"member_since"`
}

func (p *PublicDriverResponse) FromModel(model model.User) {
	p.ID = model.ID
	p.FullName = model.FullName
	p.ProfileImage = model.ProfileImage
	p.Bio = model.Bio
	p.District = model.District
	p.Languages = languages(model.Languages)
	p.MemberSince = timezone.Format(model.CreatedAt, constant.DateOnlyFormat)
}

type GetPublicDriversResponse struct {
	Drivers   []PublicDriverResponse `json:"drivers"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetPublicDriversResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Drivers = make([]PublicDriverResponse, len(models))
	for i, mod := range models {
		r.Drivers[i].FromModel(mod)
	}
}

type StatsResponse struct {
	Travelers      int `json:"travelers"`
	Drivers        int `json:"drivers"`
	Admins         int `json:"admins"`
	PendingDrivers int `json:"pending_drivers"`
}

func (r *StatsResponse) FromModel(counts model.RoleCounts) {
	r.Travelers = counts.Travelers
	r.Drivers = counts.Drivers
	r.Admins = counts.Admins
	r.PendingDrivers = counts.PendingDrivers
}

func languages(values pq.StringArray) []string {
	if values == nil {
		return []string{}
	}

	return values
}
