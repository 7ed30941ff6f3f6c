package service

import (
	"context"
	"strings"

	"event-manager/internal/domains/event/model"
	"event-manager/internal/domains/event/repository"
	"event-manager/internal/shared/metrics"
	"event-manager/pkg/clock"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// eventService implements ServiceInterface
type eventService struct {
	repo  repository.RepositoryInterface
	clock clock.Clock
	jobs  ImageJobs
	newID func() string
}

// NewEventService creates the event service. jobs may be nil when no
// background worker is configured.
func NewEventService(repo repository.RepositoryInterface, clk clock.Clock, jobs ImageJobs) ServiceInterface {
	return &eventService{
		repo:  repo,
		clock: clk,
		jobs:  jobs,
		newID: func() string { return uuid.New().String() },
	}
}

func (s *eventService) validate(req model.EventRequest) (model.EventInput, error) {
	in, err := req.ToInput()
	if err != nil {
		metrics.EventValidationFailuresTotal.Inc()
		return model.EventInput{}, model.NewValidationError(err)
	}
	return in, nil
}

func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", model.NewInvalidEventID()
	}
	return id, nil
}

// CreateEvent stores a new event; created_at and updated_at are both now
func (s *eventService) CreateEvent(ctx context.Context, req model.EventRequest) (string, error) {
	in, err := s.validate(req)
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	event := &model.Event{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(event)

	if err := s.repo.Create(ctx, event); err != nil {
		log.Error().Err(err).Msg("create event failed")
		return "", model.NewStorageError("create event", err)
	}

	metrics.EventOperationsTotal.WithLabelValues(metrics.OpCreated).Inc()
	log.Info().Str("event_id", event.ID).Msg("event created")
	return event.ID, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list events failed")
		return nil, model.NewStorageError("list events", err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("get event failed")
		return nil, model.NewStorageError("fetch event", err)
	}
	if event == nil {
		return nil, model.NewEventNotFound(id)
	}
	return event, nil
}

// UpdateEvent validates before touching storage, then replaces the editable
// fields in one statement. A missing id is reported as not found.
func (s *eventService) UpdateEvent(ctx context.Context, id string, req model.EventRequest) (*model.Event, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}

	in, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.Update(ctx, id, in, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("update event failed")
		return nil, model.NewStorageError("update event", err)
	}
	if event == nil {
		return nil, model.NewEventNotFound(id)
	}

	metrics.EventOperationsTotal.WithLabelValues(metrics.OpUpdated).Inc()
	log.Info().Str("event_id", id).Msg("event updated")
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("delete event failed")
		return model.NewStorageError("delete event", err)
	}
	if deleted == nil {
		return model.NewEventNotFound(id)
	}

	metrics.EventOperationsTotal.WithLabelValues(metrics.OpDeleted).Inc()
	log.Info().Str("event_id", id).Msg("event deleted")

	s.scheduleImageCleanup(ctx, deleted)
	return nil
}

// scheduleImageCleanup is best effort; the periodic sweep catches anything missed
func (s *eventService) scheduleImageCleanup(ctx context.Context, e *model.Event) {
	if s.jobs == nil || e.ImageURL == nil || *e.ImageURL == "" {
		return
	}
	if err := s.jobs.EnqueueDeleteImage(ctx, *e.ImageURL); err != nil {
		log.Warn().Err(err).Str("event_id", e.ID).Msg("enqueue image cleanup failed")
	}
}

// AttachMintAddress trusts the caller about the token's authenticity; only
// the address format is checked.
func (s *eventService) AttachMintAddress(ctx context.Context, id string, req model.MintAddressRequest) (*model.Event, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}

	req.NFTMintAddress = strings.TrimSpace(req.NFTMintAddress)
	if err := req.Validate(); err != nil {
		metrics.EventValidationFailuresTotal.Inc()
		return nil, model.NewValidationError(err)
	}

	event, err := s.repo.SetMintAddress(ctx, id, req.NFTMintAddress, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("attach mint address failed")
		return nil, model.NewStorageError("save mint address", err)
	}
	if event == nil {
		return nil, model.NewEventNotFound(id)
	}

	metrics.EventOperationsTotal.WithLabelValues(metrics.OpMintAttached).Inc()
	log.Info().Str("event_id", id).Str("mint_address", req.NFTMintAddress).Msg("mint address attached")
	return event, nil
}
