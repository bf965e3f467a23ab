package admin

import (
	"lankaride/infras/otel"
	bookingModel "lankaride/internal/domains/booking/model"
	bookingService "lankaride/internal/domains/booking/service"
	commissionModel "lankaride/internal/domains/commission/model"
	commissionDto "lankaride/internal/domains/commission/model/dto"
	commissionService "lankaride/internal/domains/commission/service"
	reviewModel "lankaride/internal/domains/review/model"
	reviewDto "lankaride/internal/domains/review/model/dto"
	reviewService "lankaride/internal/domains/review/service"
	supportModel "lankaride/internal/domains/support/model"
	supportDto "lankaride/internal/domains/support/model/dto"
	supportService "lankaride/internal/domains/support/service"
	userModel "lankaride/internal/domains/user/model"
	userDto "lankaride/internal/domains/user/model/dto"
	userService "lankaride/internal/domains/user/service"
	vehicleModel "lankaride/internal/domains/vehicle/model"
	vehicleDto "lankaride/internal/domains/vehicle/model/dto"
	vehicleService "lankaride/internal/domains/vehicle/service"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/validator"
	"lankaride/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler serves the back office. Every route is restricted to admins.
type Handler struct {
	user       userService.User
	vehicle    vehicleService.Vehicle
	booking    bookingService.Booking
	commission commissionService.Commission
	review     reviewService.Review
	support    supportService.Support
	otel       otel.Otel
}

func New(
	user userService.User,
	vehicle vehicleService.Vehicle,
	booking bookingService.Booking,
	commission commissionService.Commission,
	review reviewService.Review,
	support supportService.Support,
	otel otel.Otel,
) Handler {
	return Handler{
		user:       user,
		vehicle:    vehicle,
		booking:    booking,
		commission: commission,
		review:     review,
		support:    support,
		otel:       otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/stats", handler.GetStats)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", handler.GetUsers)
			r.Get("/{id}", handler.GetUserByID)
			r.Patch("/{id}/active", handler.SetUserActive)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Get("/pending", handler.GetPendingDrivers)
			r.Patch("/{id}/status", handler.SetDriverStatus)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", handler.GetVehicles)
			r.Patch("/{id}/status", handler.SetVehicleStatus)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", handler.GetBookings)
			r.Get("/summary", handler.GetBookingSummary)
			r.Get("/{id}", handler.GetBookingByID)
		})

		r.Route("/discounts", func(r chi.Router) {
			r.Get("/", handler.GetDiscounts)
			r.Post("/", handler.CreateDiscount)
			r.Get("/{id}", handler.GetDiscountByID)
			r.Patch("/{id}", handler.UpdateDiscount)
			r.Delete("/{id}", handler.DeleteDiscount)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", handler.GetReviews)
			r.Patch("/{id}", handler.ModerateReview)
		})

		r.Route("/support", func(r chi.Router) {
			r.Get("/", handler.GetTickets)
			r.Patch("/{id}/resolve", handler.ResolveTicket)
		})
	})
}

// GetStats returns platform counters
// @Summary Get platform stats
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[userDto.StatsResponse]
// @Router /v1/admin/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	res, err := handler.user.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUsers lists accounts
// @Summary List users
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param role query string false "Role"
// @Param driver_status query string false "Driver status"
// @Param active query bool false "Active"
// @Success 200 {object} response.Data[userDto.GetUsersResponse]
// @Router /v1/admin/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterFromRequest(r, userModel.TableName, userModel.FieldRole, userModel.FieldDriverStatus)

	if active := shared.ConvertStringToBool(r.URL.Query().Get(userModel.FieldActive)); active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    userModel.FieldActive,
			Value:    *active,
			Operator: gDto.FilterOperatorEq,
			Table:    userModel.TableName,
		})
	}

	res, err := handler.user.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUserByID returns one account
// @Summary Get a user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[userDto.UserResponse]
// @Failure 404 {object} response.Error
// @Router /v1/admin/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	res, err := handler.user.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetUserActive enables or disables an account
// @Summary Activate or deactivate a user
// @Description Deactivating revokes the account's refresh tokens.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body userDto.SetActiveRequest true "Set Active Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/users/{id}/active [patch]
// @Security BearerAuth
func (handler *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetUserActive")
	defer scope.End()

	req := userDto.SetActiveRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.user.SetActive(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set user active")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "User updated successfully")
}

// GetPendingDrivers lists drivers awaiting approval
// @Summary List pending drivers
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[userDto.GetUsersResponse]
// @Router /v1/admin/drivers/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingDrivers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := shared.FilterEq(userModel.TableName,
		userModel.FieldRole, constant.RoleDriver,
		userModel.FieldDriverStatus, userModel.DriverStatusPending,
	)

	res, err := handler.user.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending drivers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetDriverStatus approves or rejects a driver
// @Summary Approve or reject a driver
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Driver ID"
// @Param request body userDto.SetDriverStatusRequest true "Set Driver Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/drivers/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetDriverStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetDriverStatus")
	defer scope.End()

	req := userDto.SetDriverStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.user.SetDriverStatus(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set driver status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Driver status updated")
}

// GetVehicles lists vehicles in every status
// @Summary List vehicles
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Status"
// @Param driver_id query string false "Driver ID"
// @Success 200 {object} response.Data[vehicleDto.GetVehiclesResponse]
// @Router /v1/admin/vehicles [get]
// @Security BearerAuth
func (handler *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterFromRequest(r, vehicleModel.TableName, vehicleModel.FieldStatus, vehicleModel.FieldDriverID)

	res, err := handler.vehicle.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vehicles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetVehicleStatus approves or rejects a vehicle
// @Summary Approve or reject a vehicle
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body vehicleDto.SetStatusRequest true "Set Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/vehicles/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetVehicleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetVehicleStatus")
	defer scope.End()

	req := vehicleDto.SetStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.vehicle.SetStatus(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set vehicle status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Vehicle status updated")
}

// GetBookings lists every booking
// @Summary List bookings
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Status"
// @Param driver_id query string false "Driver ID"
// @Param traveler_id query string false "Traveler ID"
// @Param vehicle_id query string false "Vehicle ID"
// @Success 200 {object} response.Data[bookingDto.GetBookingsResponse]
// @Router /v1/admin/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterFromRequest(r, bookingModel.TableName,
		bookingModel.FieldStatus,
		bookingModel.FieldDriverID,
		bookingModel.FieldTravelerID,
		bookingModel.FieldVehicleID,
	)

	res, err := handler.booking.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingSummary returns booking counts and revenue totals
// @Summary Get booking summary
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[bookingDto.SummaryResponse]
// @Router /v1/admin/bookings/summary [get]
// @Security BearerAuth
func (handler *Handler) GetBookingSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingSummary")
	defer scope.End()

	res, err := handler.booking.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID returns any booking
// @Summary Get a booking
// @Tags Admin
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[bookingDto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /v1/admin/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	res, err := handler.booking.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDiscounts lists commission discounts
// @Summary List discounts
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query bool false "Active"
// @Success 200 {object} response.Data[commissionDto.GetDiscountsResponse]
// @Router /v1/admin/discounts [get]
// @Security BearerAuth
func (handler *Handler) GetDiscounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDiscounts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(commissionModel.FieldActive)); active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    commissionModel.FieldActive,
			Value:    *active,
			Operator: gDto.FilterOperatorEq,
			Table:    commissionModel.TableName,
		})
	}

	res, err := handler.commission.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get discounts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateDiscount adds a commission discount window
// @Summary Create a discount
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body commissionDto.CreateDiscountRequest true "Create Discount Request"
// @Success 201 {object} response.Data[commissionDto.DiscountResponse]
// @Failure 400 {object} response.Error
// @Router /v1/admin/discounts [post]
// @Security BearerAuth
func (handler *Handler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDiscount")
	defer scope.End()

	req := commissionDto.CreateDiscountRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.commission.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create discount")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetDiscountByID returns one discount
// @Summary Get a discount
// @Tags Admin
// @Produce json
// @Param id path string true "Discount ID"
// @Success 200 {object} response.Data[commissionDto.DiscountResponse]
// @Failure 404 {object} response.Error
// @Router /v1/admin/discounts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDiscountByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDiscountByID")
	defer scope.End()

	res, err := handler.commission.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get discount")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateDiscount edits a discount
// @Summary Update a discount
// @Description Bookings keep the rates they were created with.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Discount ID"
// @Param request body commissionDto.UpdateDiscountRequest true "Update Discount Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/discounts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDiscount")
	defer scope.End()

	req := commissionDto.UpdateDiscountRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.commission.Update(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update discount")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Discount updated successfully")
}

// DeleteDiscount removes a discount
// @Summary Delete a discount
// @Tags Admin
// @Produce json
// @Param id path string true "Discount ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/admin/discounts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDiscount")
	defer scope.End()

	if err := handler.commission.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete discount")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Discount deleted successfully")
}

// GetReviews lists reviews in every moderation status
// @Summary List reviews
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Status"
// @Success 200 {object} response.Data[reviewDto.GetReviewsResponse]
// @Router /v1/admin/reviews [get]
// @Security BearerAuth
func (handler *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterFromRequest(r, reviewModel.TableName, reviewModel.FieldStatus, reviewModel.FieldDriverID)

	res, err := handler.review.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reviews")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ModerateReview approves or rejects a review
// @Summary Moderate a review
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body reviewDto.ModerateRequest true "Moderate Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/reviews/{id} [patch]
// @Security BearerAuth
func (handler *Handler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ModerateReview")
	defer scope.End()

	req := reviewDto.ModerateRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	adminID, _ := shared.UserFromContext(ctx)

	if err := handler.review.Moderate(ctx, adminID, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to moderate review")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Review moderated")
}

// GetTickets lists support tickets
// @Summary List support tickets
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Status"
// @Success 200 {object} response.Data[supportDto.GetTicketsResponse]
// @Router /v1/admin/support [get]
// @Security BearerAuth
func (handler *Handler) GetTickets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTickets")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterFromRequest(r, supportModel.TableName, supportModel.FieldStatus)

	res, err := handler.support.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get support tickets")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ResolveTicket closes a support ticket
// @Summary Resolve a support ticket
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body supportDto.ResolveRequest false "Resolve Request"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/admin/support/{id}/resolve [patch]
// @Security BearerAuth
func (handler *Handler) ResolveTicket(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveTicket")
	defer scope.End()

	req := supportDto.ResolveRequest{}

	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	adminID, _ := shared.UserFromContext(ctx)

	if err := handler.support.Resolve(ctx, adminID, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve ticket")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Ticket resolved")
}
