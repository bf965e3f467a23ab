package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Chat=MockChatService

import (
	"context"
	"fmt"
	"lankaride/infras/otel"
	"lankaride/infras/postgres"
	"lankaride/infras/websocket"
	bookingDto "lankaride/internal/domains/booking/model/dto"
	bookingService "lankaride/internal/domains/booking/service"
	"lankaride/internal/domains/chat/model"
	"lankaride/internal/domains/chat/model/dto"
	"lankaride/internal/domains/chat/repository"
	userModel "lankaride/internal/domains/user/model"
	userRepository "lankaride/internal/domains/user/repository"
	vehicleModel "lankaride/internal/domains/vehicle/model"
	vehicleRepository "lankaride/internal/domains/vehicle/repository"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	gModel "lankaride/shared/model"
	"lankaride/shared/sanitizer"
	"lankaride/shared/timezone"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Websocket event types.
const (
	EventMessage = "chat.message"
	EventOffer   = "chat.offer"
)

type Chat interface {
	StartConversation(ctx context.Context, travelerID string, req dto.StartConversationRequest) (dto.ConversationResponse, error)
	// OpenConversation returns the pair's conversation, creating it when missing and linking briefID when set.
	OpenConversation(ctx context.Context, travelerID, driverID string, briefID *string) (model.Conversation, error)
	ListConversations(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetConversationsResponse, error)
	GetMessages(ctx context.Context, userID, conversationID string, params gDto.QueryParams) (dto.GetMessagesResponse, error)
	UnreadCount(ctx context.Context, userID string) (dto.UnreadResponse, error)

	SendMessage(ctx context.Context, userID, conversationID string, req dto.SendMessageRequest) (dto.MessageResponse, error)
	SendOffer(ctx context.Context, driverID, conversationID string, req dto.SendOfferRequest) (dto.MessageResponse, error)
	RespondToOffer(ctx context.Context, travelerID, messageID string, req dto.RespondOfferRequest) (dto.MessageResponse, error)
	ConvertOffer(ctx context.Context, travelerID, messageID string) (bookingDto.BookingResponse, error)
}

type serviceImpl struct {
	conversationRepo repository.Conversation
	messageRepo      repository.Message
	userRepo         userRepository.User
	vehicleRepo      vehicleRepository.Vehicle
	booking          bookingService.Booking
	transactor       postgres.Transactor
	hub              websocket.Hub
	otel             otel.Otel
}

func New(
	conversationRepo repository.Conversation,
	messageRepo repository.Message,
	userRepo userRepository.User,
	vehicleRepo vehicleRepository.Vehicle,
	booking bookingService.Booking,
	transactor postgres.Transactor,
	hub websocket.Hub,
	otel otel.Otel,
) Chat {
	return &serviceImpl{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		vehicleRepo:      vehicleRepo,
		booking:          booking,
		transactor:       transactor,
		hub:              hub,
		otel:             otel,
	}
}

func byConversation(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.ConversationTableName)
}

func byMessage(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.MessageTableName)
}

// FilterParticipant matches conversations where userID is either side.
func FilterParticipant(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldTravelerID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.ConversationTableName},
			gDto.Filter{Field: model.FieldDriverID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.ConversationTableName},
		},
	}
}

// conversation loads a conversation userID takes part in. Others get a 404.
func (s *serviceImpl) conversation(ctx context.Context, userID, id string) (model.Conversation, error) {
	conv, err := s.conversationRepo.Get(ctx, byConversation(id))
	if err != nil {
		log.Error().Err(err).Str("conversationID", id).Msg("failed to get conversation")

		return conv, fmt.Errorf("failed to get conversation: %w", err)
	}

	if conv.ID == constant.Empty || !conv.HasParticipant(userID) {
		return conv, failure.NotFound("conversation not found") // nolint:wrapcheck
	}

	return conv, nil
}

// offer loads an offer message together with its conversation, visible to the traveler only.
func (s *serviceImpl) offer(ctx context.Context, travelerID, messageID string) (model.Message, model.Conversation, error) {
	var conv model.Conversation

	msg, err := s.messageRepo.Get(ctx, byMessage(messageID))
	if err != nil {
		log.Error().Err(err).Str("messageID", messageID).Msg("failed to get message")

		return msg, conv, fmt.Errorf("failed to get message: %w", err)
	}

	if msg.ID == constant.Empty || !msg.IsOffer() {
		return msg, conv, failure.NotFound("offer not found") // nolint:wrapcheck
	}

	if conv, err = s.conversation(ctx, travelerID, msg.ConversationID); err != nil {
		return msg, conv, err
	}

	if conv.TravelerID != travelerID {
		return msg, conv, failure.Forbidden("only the traveler can answer an offer") // nolint:wrapcheck
	}

	return msg, conv, nil
}

func (s *serviceImpl) push(conv model.Conversation, eventType string, msg dto.MessageResponse) {
	event := websocket.Event{Type: eventType, Data: msg}

	s.hub.SendToUser(conv.TravelerID, event)
	s.hub.SendToUser(conv.DriverID, event)
}

func (s *serviceImpl) StartConversation(ctx context.Context, travelerID string, req dto.StartConversationRequest) (res dto.ConversationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartConversation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.DriverID == travelerID {
		return res, failure.BadRequestFromString("you cannot message yourself") // nolint:wrapcheck
	}

	driver, err := s.userRepo.Get(ctx, shared.FilterByID(req.DriverID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get driver")

		return res, fmt.Errorf("failed to get driver: %w", err)
	}

	if !driver.CanOperate() {
		return res, failure.NotFound("driver not found") // nolint:wrapcheck
	}

	conv, err := s.OpenConversation(ctx, travelerID, req.DriverID, nil)
	if err != nil {
		return res, err
	}

	res.FromModel(conv, travelerID)

	return res, nil
}

func (s *serviceImpl) OpenConversation(ctx context.Context, travelerID, driverID string, briefID *string) (conv model.Conversation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OpenConversation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	pair := shared.FilterEq(model.ConversationTableName,
		model.FieldTravelerID, travelerID,
		model.FieldDriverID, driverID,
	)

	if conv, err = s.conversationRepo.Get(ctx, pair); err != nil {
		log.Error().Err(err).Msg("failed to get conversation")

		return conv, fmt.Errorf("failed to get conversation: %w", err)
	}

	if conv.ID == constant.Empty {
		now := timezone.Now()

		err = s.conversationRepo.Insert(ctx, model.Conversation{
			ID:            uuid.NewString(),
			TravelerID:    travelerID,
			DriverID:      driverID,
			BriefID:       briefID,
			LastMessageAt: &now,
			Metadata:      gModel.NewMetadata(travelerID),
		})
		if err != nil && !shared.IsUniqueViolation(err) {
			log.Error().Err(err).Msg("failed to create conversation")

			return conv, fmt.Errorf("failed to create conversation: %w", err)
		}

		// Read back for the joined names, also covering a concurrent insert of the same pair.
		if conv, err = s.conversationRepo.Get(ctx, pair); err != nil {
			return conv, fmt.Errorf("failed to get conversation: %w", err)
		}

		return conv, nil
	}

	if briefID != nil && (conv.BriefID == nil || *conv.BriefID != *briefID) {
		fields := shared.Touch(map[string]any{model.FieldBriefID: *briefID}, driverID)

		if err = s.conversationRepo.Update(ctx, fields, byConversation(conv.ID)); err != nil {
			log.Error().Err(err).Msg("failed to link brief")

			return conv, fmt.Errorf("failed to link brief: %w", err)
		}

		conv.BriefID = briefID
	}

	return conv, nil
}

func (s *serviceImpl) ListConversations(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetConversationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListConversations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.SortBy = model.ConversationTableName + "." + model.FieldLastMessageAt
	params.SortDir = gDto.SortDirDesc

	filter := FilterParticipant(userID)

	total, err := s.conversationRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count conversations")

		return res, fmt.Errorf("failed to count conversations: %w", err)
	}

	models, err := s.conversationRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get conversations")

		return res, fmt.Errorf("failed to get conversations: %w", err)
	}

	res.FromModels(models, userID, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) GetMessages(ctx context.Context, userID, conversationID string, params gDto.QueryParams) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMessages")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conv, err := s.conversation(ctx, userID, conversationID)
	if err != nil {
		return res, err
	}

	params.Sanitize(model.MessageTableName, constant.FieldCreatedAt)

	filter := shared.FilterEq(model.MessageTableName, model.FieldConversationID, conversationID)

	total, err := s.messageRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count messages")

		return res, fmt.Errorf("failed to count messages: %w", err)
	}

	models, err := s.messageRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get messages")

		return res, fmt.Errorf("failed to get messages: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	if conv.UnreadFor(userID) > 0 {
		fields := map[string]any{conv.UnreadField(userID): 0}

		if err := s.conversationRepo.Update(ctx, fields, byConversation(conv.ID)); err != nil {
			log.Error().Err(err).Msg("failed to mark conversation read")
		}
	}

	return res, nil
}

func (s *serviceImpl) UnreadCount(ctx context.Context, userID string) (res dto.UnreadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnreadCount")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sides := []struct {
		counter string
		owner   string
	}{
		{model.FieldTravelerUnread, model.FieldTravelerID},
		{model.FieldDriverUnread, model.FieldDriverID},
	}

	for _, side := range sides {
		var unread int

		expr := fmt.Sprintf("COALESCE(SUM(%s.%s), 0)", model.ConversationTableName, side.counter)

		err = s.conversationRepo.Aggregate(ctx, expr, shared.FilterEq(model.ConversationTableName, side.owner, userID), &unread)
		if err != nil {
			log.Error().Err(err).Msg("failed to count unread messages")

			return res, fmt.Errorf("failed to count unread messages: %w", err)
		}

		res.Total += unread
	}

	return res, nil
}

// deliver stores msg, moves the conversation preview and bumps the recipient's unread counter.
func (s *serviceImpl) deliver(ctx context.Context, conv model.Conversation, msg model.Message) error {
	return s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.messageRepo.InsertTx(ctx, tx, msg); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}

		fields := shared.Touch(map[string]any{
			model.FieldLastMessage:   msg.Preview(),
			model.FieldLastMessageAt: msg.CreatedAt,
		}, msg.SenderID)

		if err := s.conversationRepo.UpdateTx(ctx, tx, fields, byConversation(conv.ID)); err != nil {
			return fmt.Errorf("failed to update conversation: %w", err)
		}

		recipient := conv.Counterpart(msg.SenderID)
		if err := s.conversationRepo.Increment(ctx, tx, conv.UnreadField(recipient), 1, byConversation(conv.ID)); err != nil {
			return fmt.Errorf("failed to update unread counter: %w", err)
		}

		return nil
	})
}

func newMessage(conv model.Conversation, senderID, kind, body string) model.Message {
	return model.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Type:           kind,
		Body:           sanitizer.Clean(strings.TrimSpace(body)),
		Metadata:       gModel.NewMetadata(senderID),
	}
}

func (s *serviceImpl) SendMessage(ctx context.Context, userID, conversationID string, req dto.SendMessageRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if strings.TrimSpace(req.Body) == constant.Empty {
		return res, failure.BadRequestFromString("message body is empty") // nolint:wrapcheck
	}

	conv, err := s.conversation(ctx, userID, conversationID)
	if err != nil {
		return res, err
	}

	msg := newMessage(conv, userID, model.MessageTypeText, req.Body)

	if err = s.deliver(ctx, conv, msg); err != nil {
		log.Error().Err(err).Msg("failed to send message")

		return res, err
	}

	res.FromModel(msg)
	s.push(conv, EventMessage, res)

	return res, nil
}

func (s *serviceImpl) SendOffer(ctx context.Context, driverID, conversationID string, req dto.SendOfferRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendOffer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conv, err := s.conversation(ctx, driverID, conversationID)
	if err != nil {
		return res, err
	}

	if conv.DriverID != driverID {
		return res, failure.Forbidden("only the driver can send an offer") // nolint:wrapcheck
	}

	vehicle, err := s.vehicleRepo.Get(ctx, shared.FilterByID(req.VehicleID, vehicleModel.FieldID, vehicleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return res, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == constant.Empty || vehicle.DriverID != driverID {
		return res, failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	// Also validates the dates and that the vehicle is listed.
	availability, err := s.booking.CheckAvailability(ctx, vehicle.ID, bookingDto.DateRangeRequest{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		if failure.IsClient(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	if !availability.Available {
		return res, failure.Conflict(availability.Reason) // nolint:wrapcheck
	}

	start, err := timezone.ParseDate(req.StartDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	end, err := timezone.ParseDate(req.EndDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	status := model.OfferStatusPending
	price := req.Price

	msg := newMessage(conv, driverID, model.MessageTypeOffer, req.Body)
	msg.OfferVehicleID = &vehicle.ID
	msg.OfferPrice = &price
	msg.OfferStartDate = &start
	msg.OfferEndDate = &end
	msg.OfferStatus = &status

	if err = s.deliver(ctx, conv, msg); err != nil {
		log.Error().Err(err).Msg("failed to send offer")

		return res, err
	}

	res.FromModel(msg)
	s.push(conv, EventOffer, res)

	return res, nil
}

func (s *serviceImpl) RespondToOffer(ctx context.Context, travelerID, messageID string, req dto.RespondOfferRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RespondToOffer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	msg, conv, err := s.offer(ctx, travelerID, messageID)
	if err != nil {
		return res, err
	}

	fields := shared.Touch(map[string]any{model.FieldOfferStatus: req.Status}, travelerID)

	affected, err := s.messageRepo.UpdateCount(ctx, fields, repository.FilterOfferIn(messageID, model.OfferStatusPending))
	if err != nil {
		log.Error().Err(err).Msg("failed to answer offer")

		return res, fmt.Errorf("failed to answer offer: %w", err)
	}

	if affected == 0 {
		return res, failure.Conflict("offer is no longer pending") // nolint:wrapcheck
	}

	status := req.Status
	msg.OfferStatus = &status

	res.FromModel(msg)
	s.push(conv, EventOffer, res)

	return res, nil
}

func (s *serviceImpl) ConvertOffer(ctx context.Context, travelerID, messageID string) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConvertOffer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	msg, conv, err := s.offer(ctx, travelerID, messageID)
	if err != nil {
		return res, err
	}

	if !msg.OfferIs(model.OfferStatusAccepted) {
		return res, failure.Conflict("only accepted offers can be booked") // nolint:wrapcheck
	}

	if msg.OfferBookingID != nil {
		return res, failure.Conflict("offer was already converted into a booking") // nolint:wrapcheck
	}

	if msg.OfferVehicleID == nil || msg.OfferPrice == nil || msg.OfferStartDate == nil || msg.OfferEndDate == nil {
		return res, failure.BadRequestFromString("offer is incomplete") // nolint:wrapcheck
	}

	res, err = s.booking.CreateFromOffer(ctx, travelerID, bookingDto.OfferBooking{
		MessageID:  msg.ID,
		VehicleID:  *msg.OfferVehicleID,
		DriverID:   conv.DriverID,
		GrossPrice: *msg.OfferPrice,
		StartDate:  timezone.CalendarDay(*msg.OfferStartDate),
		EndDate:    timezone.CalendarDay(*msg.OfferEndDate),
	})
	if err != nil {
		if failure.IsClient(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to book offer: %w", err)
	}

	msg.OfferBookingID = &res.ID

	var pushed dto.MessageResponse

	pushed.FromModel(msg)
	s.push(conv, EventOffer, pushed)

	return res, nil
}
