package model

import (
	"lankaride/shared/constant"
	"lankaride/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID            = "id"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldRole          = "role"
	FieldFullName      = "full_name"
	FieldPhone         = "phone"
	FieldProfileImage  = "profile_image"
	FieldBio           = "bio"
	FieldDistrict      = "district"
	FieldLanguages     = "languages"
	FieldIsVerified    = "is_verified"
	FieldActive        = "active"
	FieldLastLogin     = "last_login"
	FieldLicenceNumber = "licence_number"
	FieldLicenceImage  = "licence_image"
	FieldDriverStatus  = "driver_status"
	FieldStatusReason  = "status_reason"
)

// Driver review states. Travelers and admins keep an empty driver status.
const (
	DriverStatusPending  = "pending"
	DriverStatusApproved = "approved"
	DriverStatusRejected = "rejected"
)

type User struct {
	ID            string         `db:"id"`
	Email         string         `db:"email"`
	Password      string         `db:"password"`
	Role          string         `db:"role"`
	FullName      string         `db:"full_name"`
	Phone         string         `db:"phone"`
	ProfileImage  string         `db:"profile_image"`
	Bio           string         `db:"bio"`
	District      string         `db:"district"`
	Languages     pq.StringArray `db:"languages"`
	IsVerified    bool           `db:"is_verified"`
	Active        bool           `db:"active"`
	LastLogin     *time.Time     `db:"last_login"`
	LicenceNumber string         `db:"licence_number"`
	LicenceImage  string         `db:"licence_image"`
	DriverStatus  string         `db:"driver_status"`
	StatusReason  string         `db:"status_reason"`
	model.Metadata
}

func (u User) IsDriver() bool {
	return u.Role == constant.RoleDriver
}

// CanOperate reports whether a driver may publish offers and take bookings.
func (u User) CanOperate() bool {
	return u.IsDriver() && u.Active && u.DriverStatus == DriverStatusApproved
}

// RoleCounts is one row of per-role account totals.
type RoleCounts struct {
	Travelers      int `db:"travelers"`
	Drivers        int `db:"drivers"`
	Admins         int `db:"admins"`
	PendingDrivers int `db:"pending_drivers"`
}
