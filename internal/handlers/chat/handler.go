package chat

import (
	"lankaride/infras/otel"
	"lankaride/infras/websocket"
	"lankaride/internal/domains/chat/model/dto"
	"lankaride/internal/domains/chat/service"
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
	service service.Chat
	hub     websocket.Hub
	otel    otel.Otel
}

func New(service service.Chat, hub websocket.Hub, otel otel.Otel) Handler {
	return Handler{
		service: service,
		hub:     hub,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/chat", func(r chi.Router) {
		r.Get("/ws", handler.Connect)
		r.Get("/unread", handler.GetUnreadCount)

		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", handler.StartConversation)
			r.Get("/", handler.GetConversations)
			r.Get("/{id}/messages", handler.GetMessages)
			r.Post("/{id}/messages", handler.SendMessage)
			r.Post("/{id}/offers", handler.SendOffer)
		})

		r.Route("/offers", func(r chi.Router) {
			r.Post("/{id}/respond", handler.RespondToOffer)
			r.Post("/{id}/convert", handler.ConvertOffer)
		})
	})
}

// Connect upgrades to a websocket that streams chat events for the caller
// @Summary Open the chat event stream
// @Description Browsers may pass the access token as the access_token query parameter.
// @Tags Chat
// @Param access_token query string false "Access token"
// @Success 101
// @Failure 401 {object} response.Error
// @Router /v1/chat/ws [get]
// @Security BearerAuth
func (handler *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Connect")
	defer scope.End()

	userID, _ := shared.UserFromContext(ctx)

	// the upgrader has already answered the client when this fails
	if err := handler.hub.ServeWS(w, r, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to open websocket")
	}
}

// GetUnreadCount returns the caller's unread message total
// @Summary Get unread message count
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Data[dto.UnreadResponse]
// @Router /v1/chat/unread [get]
// @Security BearerAuth
func (handler *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnreadCount")
	defer scope.End()

	userID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.UnreadCount(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count unread messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// StartConversation opens a conversation with a driver
// @Summary Start a conversation
// @Description Returns the existing conversation when the pair already has one.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.StartConversationRequest true "Start Conversation Request"
// @Success 200 {object} response.Data[dto.ConversationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/chat/conversations [post]
// @Security BearerAuth
func (handler *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartConversation")
	defer scope.End()

	req := dto.StartConversationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	travelerID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.StartConversation(ctx, travelerID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start conversation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetConversations lists the caller's conversations, latest activity first
// @Summary List conversations
// @Tags Chat
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetConversationsResponse]
// @Router /v1/chat/conversations [get]
// @Security BearerAuth
func (handler *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConversations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	userID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.ListConversations(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list conversations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMessages pages through a conversation and marks it read for the caller
// @Summary Get messages
// @Tags Chat
// @Produce json
// @Param id path string true "Conversation ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetMessagesResponse]
// @Failure 404 {object} response.Error
// @Router /v1/chat/conversations/{id}/messages [get]
// @Security BearerAuth
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	userID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.GetMessages(ctx, userID, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SendMessage posts a text message
// @Summary Send a message
// @Description Contact details in the body are masked before it is stored.
// @Tags Chat
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Send Message Request"
// @Success 201 {object} response.Data[dto.MessageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/chat/conversations/{id}/messages [post]
// @Security BearerAuth
func (handler *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendMessage")
	defer scope.End()

	req := dto.SendMessageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	userID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.SendMessage(ctx, userID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// SendOffer posts a priced offer for one of the driver's vehicles
// @Summary Send an offer
// @Tags Chat
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body dto.SendOfferRequest true "Send Offer Request"
// @Success 201 {object} response.Data[dto.MessageResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/chat/conversations/{id}/offers [post]
// @Security BearerAuth
func (handler *Handler) SendOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendOffer")
	defer scope.End()

	req := dto.SendOfferRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	driverID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.SendOffer(ctx, driverID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send offer")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// RespondToOffer accepts or declines a pending offer
// @Summary Respond to an offer
// @Tags Chat
// @Accept json
// @Produce json
// @Param id path string true "Offer message ID"
// @Param request body dto.RespondOfferRequest true "Respond Offer Request"
// @Success 200 {object} response.Data[dto.MessageResponse]
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/chat/offers/{id}/respond [post]
// @Security BearerAuth
func (handler *Handler) RespondToOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondToOffer")
	defer scope.End()

	req := dto.RespondOfferRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	travelerID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.RespondToOffer(ctx, travelerID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to respond to offer")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ConvertOffer turns an accepted offer into a booking
// @Summary Book an accepted offer
// @Tags Chat
// @Produce json
// @Param id path string true "Offer message ID"
// @Success 201 {object} response.Data[bookingDto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/chat/offers/{id}/convert [post]
// @Security BearerAuth
func (handler *Handler) ConvertOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConvertOffer")
	defer scope.End()

	travelerID, _ := shared.UserFromContext(ctx)

	res, err := handler.service.ConvertOffer(ctx, travelerID, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to convert offer")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Offer converted to booking")

	response.WithJSON(w, http.StatusCreated, res)
}
