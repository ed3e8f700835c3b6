package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/soklet/toystore-app-sub001/internal/domain"
	"github.com/soklet/toystore-app-sub001/internal/events"
	"github.com/soklet/toystore-app-sub001/internal/repository"
	"github.com/soklet/toystore-app-sub001/internal/reqctx"
	apperrors "github.com/soklet/toystore-app-sub001/pkg/util"
)

// ToyService coordinates toy browsing and administration.
type ToyService struct {
	toys       repository.ToyRepository
	dispatcher events.Dispatcher
}

// NewToyService builds the service.
func NewToyService(toys repository.ToyRepository, dispatcher events.Dispatcher) *ToyService {
	return &ToyService{toys: toys, dispatcher: dispatcher}
}

// ToyInput carries the mutable fields of a toy.
type ToyInput struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
}

func (in ToyInput) validate() error {
	fieldErrors := map[string]string{}
	if in.Name == "" {
		fieldErrors["name"] = "name is required"
	}
	if in.PriceCents <= 0 {
		fieldErrors["price"] = "price must be positive"
	}
	if len(in.Currency) != 3 {
		fieldErrors["currency"] = "currency must be a 3-letter ISO code"
	}
	if len(fieldErrors) > 0 {
		return apperrors.NewValidationError("invalid toy", fieldErrors)
	}
	return nil
}

// List returns all toys. Browsing is public.
func (s *ToyService) List(ctx context.Context) ([]*domain.Toy, error) {
	return s.toys.List(ctx)
}

// Get returns one toy by id.
func (s *ToyService) Get(ctx context.Context, id string) (*domain.Toy, error) {
	if uuid.Validate(id) != nil {
		// A malformed id cannot name a toy; surfacing the postgres uuid
		// scan error would turn a bad request into a 500.
		return nil, apperrors.NewNotFound("toy")
	}
	return s.toys.GetByID(ctx, id)
}

// Create adds a toy and announces it on the event stream.
func (s *ToyService) Create(ctx context.Context, input ToyInput) (*domain.Toy, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	toy := &domain.Toy{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    input.Currency,
	}
	if err := s.toys.Create(ctx, toy); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventToyCreated, toy)
	return toy, nil
}

// Update replaces a toy's fields and announces the change.
func (s *ToyService) Update(ctx context.Context, id string, input ToyInput) (*domain.Toy, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	toy, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	toy.Name = input.Name
	toy.Description = input.Description
	toy.PriceCents = input.PriceCents
	toy.Currency = input.Currency
	if err := s.toys.Update(ctx, toy); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventToyUpdated, toy)
	return toy, nil
}

// Delete removes a toy and announces the removal.
func (s *ToyService) Delete(ctx context.Context, id string) error {
	toy, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.toys.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.EventToyDeleted, toy)
	return nil
}

func (s *ToyService) publish(ctx context.Context, eventType events.EventType, toy *domain.Toy) {
	actor := events.Actor{}
	if rc, ok := reqctx.FromContext(ctx); ok && rc.Authenticated() {
		actor.AccountID = rc.Account().ID
		actor.RoleID = rc.Account().RoleID
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.ToyPayload{
			ToyID:      toy.ID,
			Name:       toy.Name,
			PriceCents: toy.PriceCents,
			Currency:   toy.Currency,
		},
	})
}
