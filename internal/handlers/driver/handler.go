package driver

import (
	"lankaride/infras/otel"
	availabilityDto "lankaride/internal/domains/availability/model/dto"
	availabilityService "lankaride/internal/domains/availability/service"
	bookingModel "lankaride/internal/domains/booking/model"
	bookingDto "lankaride/internal/domains/booking/model/dto"
	bookingService "lankaride/internal/domains/booking/service"
	"lankaride/internal/domains/vehicle/model/dto"
	"lankaride/internal/domains/vehicle/service"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"lankaride/shared/validator"
	"lankaride/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const paramAvailabilityID = "availabilityID"

// Handler serves the driver workspace: fleet, calendar and incoming bookings.
type Handler struct {
	vehicle      service.Vehicle
	availability availabilityService.Availability
	booking      bookingService.Booking
	otel         otel.Otel
}

func New(
	vehicle service.Vehicle,
	availability availabilityService.Availability,
	booking bookingService.Booking,
	otel otel.Otel,
) Handler {
	return Handler{
		vehicle:      vehicle,
		availability: availability,
		booking:      booking,
		otel:         otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/driver", func(r chi.Router) {
		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", handler.ListVehicles)
			r.Post("/", handler.CreateVehicle)
			r.Patch("/{id}", handler.UpdateVehicle)
			r.Delete("/{id}", handler.DeleteVehicle)
			r.Post("/{id}/images", handler.UploadImages)
			r.Delete("/{id}/images/{index}", handler.RemoveImage)
			r.Post("/{id}/availability", handler.AddAvailability)
			r.Delete("/{id}/availability/{availabilityID}", handler.DeleteAvailability)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", handler.ListBookings)
			r.Post("/{id}/confirm", handler.ConfirmBooking)
			r.Post("/{id}/reject", handler.RejectBooking)
		})
	})
}

// ListVehicles lists the caller's vehicles in every status
// @Summary List own vehicles
// @Tags Driver
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetVehiclesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/driver/vehicles [get]
// @Security BearerAuth
func (handler *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListDriverVehicles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	driverID, _ := shared.UserFromContext(ctx)

	res, err := handler.vehicle.ListMine(ctx, driverID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list driver vehicles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateVehicle registers a vehicle for approval
// @Summary Create a vehicle
// @Description New vehicles start pending and are hidden from search until an admin approves them.
// @Tags Driver
// @Accept json
// @Produce json
// @Param request body dto.CreateVehicleRequest true "Create Vehicle Request"
// @Success 201 {object} response.Data[dto.VehicleResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/driver/vehicles [post]
// @Security BearerAuth
func (handler *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVehicle")
	defer scope.End()

	req := dto.CreateVehicleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	driverID, _ := shared.UserFromContext(ctx)

	res, err := handler.vehicle.Create(ctx, driverID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create vehicle")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vehicle created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateVehicle edits one of the caller's vehicles
// @Summary Update a vehicle
// @Tags Driver
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body dto.UpdateVehicleRequest true "Update Vehicle Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/driver/vehicles/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVehicle")
	defer scope.End()

	req := dto.UpdateVehicleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	driverID, _ := shared.UserFromContext(ctx)

	if err := handler.vehicle.Update(ctx, driverID, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update vehicle")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Vehicle updated successfully")
}

// DeleteVehicle removes one of the caller's vehicles
// @Summary Delete a vehicle
// @Tags Driver
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/driver/vehicles/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVehicle")
	defer scope.End()

	driverID, _ := shared.UserFromContext(ctx)

	if err := handler.vehicle.Delete(ctx, driverID, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete vehicle")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Vehicle deleted successfully")
}

// UploadImages appends photos to a vehicle
// @Summary Upload vehicle images
// @Tags Driver
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param images formData file true "Images"
// @Success 200 {object} response.Data[dto.VehicleResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/driver/vehicles/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadVehicleImages")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UploadImagesRequest{Images: r.MultipartForm.File[constant.FormFiles]}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate images")

		response.WithError(w, err)

		return
	}

	driverID, _ := shared.UserFromContext(ctx)

	res, err := handler.vehicle.UploadImages(ctx, driverID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload vehicle images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RemoveImage drops one photo by its position
// @Summary Remove a vehicle image
// @Tags Driver
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param index path int true "Image index"
// @Success 200 {object} response.Data[dto.VehicleResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/driver/vehicles/{id}/images/{index} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveVehicleImage")
	defer scope.End()

	index := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamImageIndex))
	if index == nil {
		err := failure.BadRequestFromString("image index must be a number")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	driverID, _ := shared.UserFromContext(ctx)

	res, err := handler.vehicle.RemoveImage(ctx, driverID, chi.URLParam(r, constant.RequestParamID), *index)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove vehicle image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddAvailability blocks or reopens days on a vehicle's calendar
// @Summary Add a calendar block
// @Tags Driver
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body availabilityDto.AddRequest true "Add Availability Request"
// @Success 201 {object} response.Data[availabilityDto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/driver/vehicles/{id}/availability [post]
// @Security BearerAuth
func (handler *Handler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddAvailability")
	defer scope.End()

	req := availabilityDto.AddRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	driverID, _ := shared.UserFromContext(ctx)

	res, err := handler.availability.Add(ctx, driverID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// DeleteAvailability removes a calendar block
// @Summary Delete a calendar block
// @Tags Driver
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param availabilityID path string true "Availability ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/driver/vehicles/{id}/availability/{availabilityID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAvailability")
	defer scope.End()

	driverID, _ := shared.UserFromContext(ctx)

	if err := handler.availability.Delete(ctx, driverID, chi.URLParam(r, paramAvailabilityID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete availability")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Availability removed successfully")
}

// ListBookings lists bookings made on the caller's vehicles
// @Summary List incoming bookings
// @Tags Driver
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Booking status"
// @Param vehicle_id query string false "Vehicle ID"
// @Success 200 {object} response.Data[bookingDto.GetBookingsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/driver/bookings [get]
// @Security BearerAuth
func (handler *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListDriverBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterFromRequest(r, bookingModel.TableName, bookingModel.FieldStatus, bookingModel.FieldVehicleID)

	driverID, _ := shared.UserFromContext(ctx)

	res, err := handler.booking.ListForDriver(ctx, driverID, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list driver bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ConfirmBooking accepts a pending booking
// @Summary Confirm a booking
// @Tags Driver
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/driver/bookings/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmBooking")
	defer scope.End()

	driverID, _ := shared.UserFromContext(ctx)

	if err := handler.booking.Confirm(ctx, driverID, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking confirmed")
}

// RejectBooking declines a pending booking
// @Summary Reject a booking
// @Tags Driver
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body bookingDto.ReasonRequest false "Reason"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/driver/bookings/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectBooking")
	defer scope.End()

	req := bookingDto.ReasonRequest{}

	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	driverID, _ := shared.UserFromContext(ctx)

	if err := handler.booking.Reject(ctx, driverID, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking rejected")
}
