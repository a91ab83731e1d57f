package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/cybersecclub/club-site-go/models"
	repositories "github.com/cybersecclub/club-site-go/repositories"
)

// EventService implements the event workflow. Events are created by
// admins, start out upcoming and are marked completed after they run.
type EventService struct {
	events repositories.EventRepository
}

func NewEventService(events repositories.EventRepository) *EventService {
	return &EventService{events: events}
}

type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Mode        string
	Tag         string
}

func (s *EventService) Create(ctx context.Context, callerRole string, in CreateEventInput) (*models.Event, error) {
	if !models.IsAdmin(callerRole) {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Tag) == "" {
		return nil, validationf("title, description and tag are required")
	}
	if in.Date.IsZero() {
		return nil, validationf("date is required")
	}
	if !models.ValidEventMode(in.Mode) {
		return nil, validationf("invalid mode %q", in.Mode)
	}

	now := time.Now()
	event := &models.Event{
		ID:          primitive.NewObjectID(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Date:        in.Date,
		Mode:        in.Mode,
		Tag:         in.Tag,
		Status:      models.EventStatusUpcoming,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List returns every event sorted soonest first.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.events.List(ctx)
}

// ListPending returns events still awaiting completion, for the admin
// console.
func (s *EventService) ListPending(ctx context.Context, callerRole string) ([]models.Event, error) {
	if !models.IsAdmin(callerRole) {
		return nil, ErrUnauthorized
	}
	return s.events.ListByStatus(ctx, models.EventStatusUpcoming)
}

// Moderate overwrites an event's status, same shape as blog moderation.
func (s *EventService) Moderate(ctx context.Context, callerRole string, id primitive.ObjectID, target string) (*models.Event, error) {
	if !models.IsAdmin(callerRole) {
		return nil, ErrUnauthorized
	}
	if !models.ValidEventStatus(target) {
		return nil, validationf("invalid status %q", target)
	}

	event, err := s.events.SetStatus(ctx, id, target)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return event, nil
}
