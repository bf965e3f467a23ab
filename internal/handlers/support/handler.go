package support

import (
	"lankaride/infras/otel"
	"lankaride/internal/domains/support/model/dto"
	"lankaride/internal/domains/support/service"
	"lankaride/shared"
	"lankaride/shared/constant"
	"lankaride/shared/validator"
	"lankaride/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Support
	otel    otel.Otel
}

func New(service service.Support, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/support", func(r chi.Router) {
		r.Post("/", handler.CreateTicket)
	})
}

// CreateTicket files a support request
// @Summary Contact support
// @Description Open to guests. Signed in callers get the ticket linked to their account.
// @Tags Support
// @Accept json
// @Produce json
// @Param request body dto.CreateTicketRequest true "Create Ticket Request"
// @Success 201 {object} response.Data[dto.TicketResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/support [post]
func (handler *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTicket")
	defer scope.End()

	req := dto.CreateTicketRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	userID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.Create(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create support ticket")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Support ticket created")

	response.WithJSON(w, http.StatusCreated, res)
}
