package brief

import (
	"lankaride/infras/otel"
	"lankaride/internal/domains/brief/model/dto"
	"lankaride/internal/domains/brief/service"
	chatDto "lankaride/internal/domains/chat/model/dto"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/validator"
	"lankaride/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Brief
	otel    otel.Otel
}

func New(service service.Brief, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/briefs", func(r chi.Router) {
		r.Post("/", handler.CreateBrief)
		r.Get("/", handler.GetOpenBriefs)
		r.Get("/mine", handler.GetMyBriefs)
		r.Get("/{id}", handler.GetBriefByID)
		r.Post("/{id}/close", handler.CloseBrief)
		r.Post("/{id}/respond", handler.RespondToBrief)
	})
}

// CreateBrief posts a trip request for drivers to answer
// @Summary Create a trip brief
// @Tags Brief
// @Accept json
// @Produce json
// @Param request body dto.CreateBriefRequest true "Create Brief Request"
// @Success 201 {object} response.Data[dto.BriefResponse]
// @Failure 400 {object} response.Error
// @Router /v1/briefs [post]
// @Security BearerAuth
func (handler *Handler) CreateBrief(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBrief")
	defer scope.End()

	req := dto.CreateBriefRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	travelerID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.Create(ctx, travelerID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create brief")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetOpenBriefs lists open briefs that have not started
// @Summary List open briefs
// @Tags Brief
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param vehicle_type query string false "Vehicle type"
// @Param destination query string false "Destination contains"
// @Param min_passengers query int false "Minimum passengers"
// @Success 200 {object} response.Data[dto.GetBriefsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/briefs [get]
// @Security BearerAuth
func (handler *Handler) GetOpenBriefs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOpenBriefs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	req := dto.ListRequest{
		VehicleType:   query.Get("vehicle_type"),
		Destination:   query.Get("destination"),
		MinPassengers: shared.ConvertStringToInt(query.Get("min_passengers")),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate brief query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ListOpen(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list briefs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyBriefs lists the caller's briefs in every status
// @Summary List own briefs
// @Tags Brief
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBriefsResponse]
// @Router /v1/briefs/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyBriefs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBriefs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	travelerID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.ListMine(ctx, travelerID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list own briefs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBriefByID returns one brief
// @Summary Get a brief
// @Tags Brief
// @Produce json
// @Param id path string true "Brief ID"
// @Success 200 {object} response.Data[dto.BriefResponse]
// @Failure 404 {object} response.Error
// @Router /v1/briefs/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBriefByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBriefByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get brief")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CloseBrief stops a brief from collecting offers
// @Summary Close a brief
// @Tags Brief
// @Produce json
// @Param id path string true "Brief ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/briefs/{id}/close [post]
// @Security BearerAuth
func (handler *Handler) CloseBrief(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CloseBrief")
	defer scope.End()

	travelerID, _ := shared.UserFromContext(ctx)

	if err := handler.service.Close(ctx, travelerID, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to close brief")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Brief closed")
}

// RespondToBrief answers a brief with an offer
// @Summary Respond to a brief
// @Description Opens the conversation with the brief owner and posts the offer in it.
// @Tags Brief
// @Accept json
// @Produce json
// @Param id path string true "Brief ID"
// @Param request body chatDto.SendOfferRequest true "Offer"
// @Success 201 {object} response.Data[chatDto.MessageResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/briefs/{id}/respond [post]
// @Security BearerAuth
func (handler *Handler) RespondToBrief(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondToBrief")
	defer scope.End()

	req := chatDto.SendOfferRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	driverID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.Respond(ctx, driverID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to respond to brief")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
