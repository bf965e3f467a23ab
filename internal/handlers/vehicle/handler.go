package vehicle

import (
	"lankaride/infras/otel"
	availabilityService "lankaride/internal/domains/availability/service"
	bookingDto "lankaride/internal/domains/booking/model/dto"
	bookingService "lankaride/internal/domains/booking/service"
	reviewService "lankaride/internal/domains/review/service"
	"lankaride/internal/domains/vehicle/model/dto"
	"lankaride/internal/domains/vehicle/service"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/validator"
	"lankaride/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryDistrict  = "district"
	queryType      = "type"
	queryMinSeats  = "min_seats"
	queryMaxPrice  = "max_price"
	queryStartDate = "start_date"
	queryEndDate   = "end_date"
)

// Handler serves the public vehicle catalogue.
type Handler struct {
	service      service.Vehicle
	availability availabilityService.Availability
	booking      bookingService.Booking
	review       reviewService.Review
	otel         otel.Otel
}

func New(
	service service.Vehicle,
	availability availabilityService.Availability,
	booking bookingService.Booking,
	review reviewService.Review,
	otel otel.Otel,
) Handler {
	return Handler{
		service:      service,
		availability: availability,
		booking:      booking,
		review:       review,
		otel:         otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", handler.Search)
		r.Get("/{id}", handler.Get)
		r.Get("/{id}/reviews", handler.GetReviews)
		r.Get("/{id}/availability", handler.GetAvailability)
		r.Get("/{id}/availability/check", handler.CheckAvailability)
		r.Get("/{id}/quote", handler.Quote)
	})
}

func dateRange(r *http.Request) bookingDto.DateRangeRequest {
	return bookingDto.DateRangeRequest{
		StartDate: r.URL.Query().Get(queryStartDate),
		EndDate:   r.URL.Query().Get(queryEndDate),
	}
}

// Search lists bookable vehicles
// @Summary Search vehicles
// @Description Only approved vehicles of active approved drivers are listed. With a date pair, vehicles that are booked or blocked on any of those days are left out.
// @Tags Vehicle
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param district query string false "District"
// @Param type query string false "Vehicle type"
// @Param min_seats query int false "Minimum seats"
// @Param max_price query number false "Maximum price per day"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetVehiclesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles [get]
func (handler *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchVehicles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	req := dto.SearchRequest{
		District:  query.Get(queryDistrict),
		Type:      query.Get(queryType),
		MinSeats:  shared.ConvertStringToInt(query.Get(queryMinSeats)),
		MaxPrice:  shared.ConvertStringToFloat(query.Get(queryMaxPrice)),
		StartDate: query.Get(queryStartDate),
		EndDate:   query.Get(queryEndDate),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate search query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Search(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search vehicles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Get returns one vehicle
// @Summary Get a vehicle
// @Tags Vehicle
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Data[dto.VehicleResponse]
// @Failure 404 {object} response.Error
// @Router /v1/vehicles/{id} [get]
func (handler *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicle")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("vehicleID", id).Msg("failed to get vehicle")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReviews lists approved reviews for a vehicle
// @Summary Get vehicle reviews
// @Tags Vehicle
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[reviewDto.GetReviewsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id}/reviews [get]
func (handler *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicleReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.review.ListForVehicle(ctx, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vehicle reviews")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAvailability lists the driver's calendar blocks for a vehicle
// @Summary Get vehicle calendar blocks
// @Tags Vehicle
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Data[[]availabilityDto.AvailabilityResponse]
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	res, err := handler.availability.List(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckAvailability tells whether a vehicle is free for every day of a range
// @Summary Check vehicle availability
// @Tags Vehicle
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[bookingDto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/vehicles/{id}/availability/check [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dateRange(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate date range")

		response.WithError(w, err)

		return
	}

	res, err := handler.booking.CheckAvailability(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Quote prices a trip without booking it
// @Summary Quote a trip
// @Description Returns the gross price and the commission split that a booking for these dates would get.
// @Tags Vehicle
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[bookingDto.QuoteResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/vehicles/{id}/quote [get]
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	req := bookingDto.QuoteRequest{
		VehicleID:        chi.URLParam(r, constant.RequestParamID),
		DateRangeRequest: dateRange(r),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate quote request")

		response.WithError(w, err)

		return
	}

	res, err := handler.booking.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote trip")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
