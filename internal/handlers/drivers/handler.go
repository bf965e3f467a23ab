package drivers

import (
	"lankaride/infras/otel"
	reviewService "lankaride/internal/domains/review/service"
	"lankaride/internal/domains/user/model"
	"lankaride/internal/domains/user/service"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler serves public driver profiles.
type Handler struct {
	user   service.User
	review reviewService.Review
	otel   otel.Otel
}

func New(user service.User, review reviewService.Review, otel otel.Otel) Handler {
	return Handler{
		user:   user,
		review: review,
		otel:   otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", handler.GetDrivers)
		r.Get("/{id}", handler.GetDriverByID)
		r.Get("/{id}/rating", handler.GetDriverRating)
		r.Get("/{id}/reviews", handler.GetDriverReviews)
	})
}

// GetDrivers lists approved active drivers
// @Summary List drivers
// @Tags Drivers
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param district query string false "District"
// @Success 200 {object} response.Data[dto.GetPublicDriversResponse]
// @Failure 500 {object} response.Error
// @Router /v1/drivers [get]
func (handler *Handler) GetDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDrivers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterFromRequest(r, model.TableName, model.FieldDistrict)

	res, err := handler.user.ListDrivers(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list drivers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDriverByID returns a public driver profile
// @Summary Get a driver
// @Tags Drivers
// @Produce json
// @Param id path string true "Driver ID"
// @Success 200 {object} response.Data[dto.PublicDriverResponse]
// @Failure 404 {object} response.Error
// @Router /v1/drivers/{id} [get]
func (handler *Handler) GetDriverByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDriverByID")
	defer scope.End()

	res, err := handler.user.GetPublicDriver(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get driver")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDriverRating returns the average of approved reviews
// @Summary Get driver rating
// @Tags Drivers
// @Produce json
// @Param id path string true "Driver ID"
// @Success 200 {object} response.Data[reviewDto.RatingResponse]
// @Router /v1/drivers/{id}/rating [get]
func (handler *Handler) GetDriverRating(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDriverRating")
	defer scope.End()

	res, err := handler.review.DriverRating(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get driver rating")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDriverReviews lists approved reviews for a driver
// @Summary Get driver reviews
// @Tags Drivers
// @Produce json
// @Param id path string true "Driver ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[reviewDto.GetReviewsResponse]
// @Router /v1/drivers/{id}/reviews [get]
func (handler *Handler) GetDriverReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDriverReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.review.ListForDriver(ctx, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get driver reviews")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
