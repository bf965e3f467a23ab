package validator_test

import (
	"lankaride/shared/failure"
	"lankaride/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type tripRequest struct {
	Email     string  `json:"email"      validate:"required,email"`
	StartDate string  `json:"start_date" validate:"required,date"`
	EndDate   string  `json:"end_date"   validate:"required,date"`
	Seats     int     `json:"seats"      validate:"gte=1,lte=60"`
	Vehicle   string  `json:"vehicle"    validate:"oneof=car van suv"`
	Price     float64 `json:"price"      validate:"gt=0"`
}

func validTrip() tripRequest {
	return tripRequest{
		Email:     "traveler@example.com",
		StartDate: "2025-07-01",
		EndDate:   "2025-07-04",
		Seats:     4,
		Vehicle:   "van",
		Price:     12000,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *tripRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *tripRequest) {}},
		{name: "missing email", mutate: func(r *tripRequest) { r.Email = "" }, wantErr: "email is required"},
		{name: "bad email", mutate: func(r *tripRequest) { r.Email = "nope" }, wantErr: "email must be a valid email address"},
		{name: "bad date", mutate: func(r *tripRequest) { r.StartDate = "01/07/2025" }, wantErr: "start_date must be a date formatted as YYYY-MM-DD"},
		{name: "seats out of range", mutate: func(r *tripRequest) { r.Seats = 0 }, wantErr: "seats must be greater than or equal to 1"},
		{name: "vehicle not allowed", mutate: func(r *tripRequest) { r.Vehicle = "boat" }, wantErr: "vehicle must be one of car van suv"},
		{name: "zero price", mutate: func(r *tripRequest) { r.Price = 0 }, wantErr: "price must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTrip()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"email":"t@example.com","start_date":"2025-07-01","end_date":"2025-07-02","seats":2,"vehicle":"car","price":9000}`,
		},
		{name: "malformed", body: `{"email":}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req tripRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "t@example.com", req.Email)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2025-01-31", "date"))
	assert.Error(t, validator.ValidateVar("2025-02-31", "date"))
	assert.NoError(t, validator.ValidateVar("guest", "oneof=guest driver"))
	assert.Error(t, validator.ValidateVar("admin", "oneof=guest driver"))
}

func TestMimetypes_DataURI(t *testing.T) {
	png := "data:image/png;base64,iVBORw0KGgo="

	assert.NoError(t, validator.ValidateVar(png, "mimetypes=image/png image/jpeg"))
	assert.Error(t, validator.ValidateVar(png, "mimetypes=image/jpeg"))
	assert.Error(t, validator.ValidateVar("not-a-data-uri", "mimetypes=image/png"))
	assert.NoError(t, validator.ValidateVar(png, "maxfilesize=1"))
}

func TestDistrict(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "Kandy"},
		{value: "nuwara eliya"},
		{value: " Galle "},
		{value: "Ella", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := validator.ValidateVar(tt.value, "district")
			if tt.wantErr {
				assert.ErrorContains(t, err, "must be a Sri Lankan district")

				return
			}

			assert.NoError(t, err)
		})
	}
}
