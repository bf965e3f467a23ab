package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Brief=MockBriefService

import (
	"context"
	"fmt"
	"lankaride/infras/otel"
	"lankaride/internal/domains/brief/model"
	"lankaride/internal/domains/brief/model/dto"
	"lankaride/internal/domains/brief/repository"
	chatDto "lankaride/internal/domains/chat/model/dto"
	chatService "lankaride/internal/domains/chat/service"
	userModel "lankaride/internal/domains/user/model"
	userRepository "lankaride/internal/domains/user/repository"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"
	"lankaride/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Brief interface {
	Create(ctx context.Context, travelerID string, req dto.CreateBriefRequest) (dto.BriefResponse, error)
	Get(ctx context.Context, id string) (dto.BriefResponse, error)
	ListOpen(ctx context.Context, params gDto.QueryParams, req dto.ListRequest) (dto.GetBriefsResponse, error)
	ListMine(ctx context.Context, travelerID string, params gDto.QueryParams) (dto.GetBriefsResponse, error)
	Close(ctx context.Context, travelerID, id string) error
	// Respond opens the driver's conversation with the brief owner and posts an offer in it.
	Respond(ctx context.Context, driverID, id string, req chatDto.SendOfferRequest) (chatDto.MessageResponse, error)
}

type serviceImpl struct {
	repo     repository.Brief
	userRepo userRepository.User
	chat     chatService.Chat
	otel     otel.Otel
}

func New(repo repository.Brief, userRepo userRepository.User, chat chatService.Chat, otel otel.Otel) Brief {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		chat:     chat,
		otel:     otel,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Brief, error) {
	brief, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Str("briefID", id).Msg("failed to get brief")

		return brief, fmt.Errorf("failed to get brief: %w", err)
	}

	if brief.ID == constant.Empty {
		return brief, failure.NotFound("brief not found") // nolint:wrapcheck
	}

	return brief, nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBriefsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count briefs")

		return res, fmt.Errorf("failed to count briefs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get briefs")

		return res, fmt.Errorf("failed to get briefs: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, travelerID string, req dto.CreateBriefRequest) (res dto.BriefResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, err := timezone.ParseDate(req.StartDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	end, err := timezone.ParseDate(req.EndDate)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if end.Before(start) {
		return res, failure.BadRequestFromString("end date must not be before start date") // nolint:wrapcheck
	}

	if start.Before(timezone.Today()) {
		return res, failure.BadRequestFromString("start date is in the past") // nolint:wrapcheck
	}

	brief := req.ToModel(travelerID, start, end)

	if err = s.repo.Insert(ctx, brief); err != nil {
		log.Error().Err(err).Msg("failed to create brief")

		return res, fmt.Errorf("failed to create brief: %w", err)
	}

	res.FromModel(brief)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BriefResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	brief, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(brief)

	return res, nil
}

func (s *serviceImpl) ListOpen(ctx context.Context, params gDto.QueryParams, req dto.ListRequest) (res dto.GetBriefsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListOpen")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(model.TableName, model.FieldStartDate, model.FieldBudget, model.FieldPassengers, constant.FieldCreatedAt)

	return s.list(ctx, params, req.ToFilter())
}

func (s *serviceImpl) ListMine(ctx context.Context, travelerID string, params gDto.QueryParams) (res dto.GetBriefsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(model.TableName, model.FieldStartDate, constant.FieldCreatedAt)

	return s.list(ctx, params, shared.FilterEq(model.TableName, model.FieldTravelerID, travelerID))
}

func (s *serviceImpl) Close(ctx context.Context, travelerID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Close")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	brief, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if brief.TravelerID != travelerID {
		return failure.NotFound("brief not found") // nolint:wrapcheck
	}

	fields := shared.Touch(map[string]any{model.FieldStatus: model.StatusClosed}, travelerID)

	affected, err := s.repo.UpdateCount(ctx, fields, shared.FilterEq(model.TableName,
		model.FieldID, id,
		model.FieldStatus, model.StatusOpen,
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to close brief")

		return fmt.Errorf("failed to close brief: %w", err)
	}

	if affected == 0 {
		return failure.Conflict("brief is already closed") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Respond(ctx context.Context, driverID, id string, req chatDto.SendOfferRequest) (res chatDto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Respond")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	driver, err := s.userRepo.Get(ctx, shared.FilterByID(driverID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get driver")

		return res, fmt.Errorf("failed to get driver: %w", err)
	}

	if !driver.CanOperate() {
		return res, failure.Forbidden("only approved drivers can respond to briefs") // nolint:wrapcheck
	}

	brief, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if !brief.IsOpen() {
		return res, failure.Conflict("brief is closed") // nolint:wrapcheck
	}

	if brief.TravelerID == driverID {
		return res, failure.BadRequestFromString("you cannot respond to your own brief") // nolint:wrapcheck
	}

	conv, err := s.chat.OpenConversation(ctx, brief.TravelerID, driverID, &brief.ID)
	if err != nil {
		if failure.IsClient(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to open conversation: %w", err)
	}

	return s.chat.SendOffer(ctx, driverID, conv.ID, req) // nolint:wrapcheck
}
