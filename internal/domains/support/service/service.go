package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Support=MockSupportService

import (
	"context"
	"fmt"
	"lankaride/config"
	"lankaride/infras/otel"
	notifModel "lankaride/internal/domains/notification/model"
	notifService "lankaride/internal/domains/notification/service"
	"lankaride/internal/domains/support/model"
	"lankaride/internal/domains/support/model/dto"
	"lankaride/internal/domains/support/repository"
	"lankaride/shared"
	"lankaride/shared/constant"
	gDto "lankaride/shared/dto"
	"lankaride/shared/failure"

	"github.com/rs/zerolog/log"
)

type Support interface {
	// Create stores a ticket. userID is empty for anonymous senders.
	Create(ctx context.Context, userID string, req dto.CreateTicketRequest) (dto.TicketResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTicketsResponse, error)
	Resolve(ctx context.Context, adminID, id string, req dto.ResolveRequest) error
}

type serviceImpl struct {
	repo     repository.Ticket
	notifier notifService.Notifier
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Ticket, notifier notifService.Notifier, cfg *config.Config, otel otel.Otel) Support {
	return &serviceImpl{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, userID string, req dto.CreateTicketRequest) (res dto.TicketResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ticket := req.ToModel(userID)

	if err = s.repo.Insert(ctx, ticket); err != nil {
		log.Error().Err(err).Msg("failed to create support ticket")

		return res, fmt.Errorf("failed to create support ticket: %w", err)
	}

	if s.cfg.App.AdminEmail != constant.Empty {
		s.notifier.Notify(ctx, notifModel.Event{
			Type:           notifModel.TypeSupportTicket,
			RecipientEmail: s.cfg.App.AdminEmail,
			RecipientName:  s.cfg.App.Name,
			Data: map[string]string{
				notifModel.DataSubject: ticket.Subject,
				notifModel.DataMessage: ticket.Message,
				notifModel.DataFrom:    fmt.Sprintf("%s <%s>", ticket.Name, ticket.Email),
			},
		})
	}

	res.FromModel(ticket)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTicketsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(model.TableName, constant.FieldCreatedAt, model.FieldStatus)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count support tickets")

		return res, fmt.Errorf("failed to count support tickets: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get support tickets")

		return res, fmt.Errorf("failed to get support tickets: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Resolve(ctx context.Context, adminID, id string, req dto.ResolveRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := shared.Touch(map[string]any{
		model.FieldStatus:         model.StatusResolved,
		model.FieldResolutionNote: req.Note,
	}, adminID)

	affected, err := s.repo.UpdateCount(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve support ticket")

		return fmt.Errorf("failed to resolve support ticket: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("support ticket not found") // nolint:wrapcheck
	}

	return nil
}
