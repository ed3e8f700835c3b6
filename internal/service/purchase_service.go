package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/soklet/toystore-app-sub001/internal/domain"
	"github.com/soklet/toystore-app-sub001/internal/events"
	"github.com/soklet/toystore-app-sub001/internal/payment"
	"github.com/soklet/toystore-app-sub001/internal/repository"
	"github.com/soklet/toystore-app-sub001/internal/reqctx"
	apperrors "github.com/soklet/toystore-app-sub001/pkg/util"
)

// PurchaseService charges cards through the payment gateway and records
// completed purchases.
type PurchaseService struct {
	purchases  repository.PurchaseRepository
	toys       repository.ToyRepository
	gateway    payment.Gateway
	dispatcher events.Dispatcher
}

// NewPurchaseService builds the service.
func NewPurchaseService(purchases repository.PurchaseRepository, toys repository.ToyRepository, gateway payment.Gateway, dispatcher events.Dispatcher) *PurchaseService {
	return &PurchaseService{purchases: purchases, toys: toys, gateway: gateway, dispatcher: dispatcher}
}

// PurchaseInput carries the fields of a purchase request.
type PurchaseInput struct {
	ToyID          string
	CardNumber     string
	ExpirationDate string
}

// Purchase charges the caller's card for a toy. The buyer is the account in
// the ambient request context; the route policy guarantees it is present.
func (s *PurchaseService) Purchase(ctx context.Context, input PurchaseInput) (*domain.Purchase, error) {
	fieldErrors := map[string]string{}
	if input.ToyID == "" {
		fieldErrors["toyId"] = "toy id is required"
	} else if uuid.Validate(input.ToyID) != nil {
		fieldErrors["toyId"] = "toy id must be a valid uuid"
	}
	if input.CardNumber == "" {
		fieldErrors["creditCardNumber"] = "card number is required"
	}
	if input.ExpirationDate == "" {
		fieldErrors["creditCardExpiration"] = "card expiration is required"
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError("invalid purchase request", fieldErrors)
	}

	buyer := reqctx.MustFromContext(ctx).Account()

	toy, err := s.toys.GetByID(ctx, input.ToyID)
	if err != nil {
		return nil, err
	}

	transactionID, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		CardNumber:     input.CardNumber,
		ExpirationDate: input.ExpirationDate,
		AmountCents:    toy.PriceCents,
		Currency:       toy.Currency,
	})
	if err != nil {
		if errors.Is(err, payment.ErrCardDeclined) {
			return nil, apperrors.NewPaymentDeclined("card was declined")
		}
		return nil, err
	}

	purchase := &domain.Purchase{
		AccountID:            buyer.ID,
		ToyID:                toy.ID,
		PriceCents:           toy.PriceCents,
		Currency:             toy.Currency,
		PaymentTransactionID: transactionID,
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventToyPurchased,
		Actor:     events.Actor{AccountID: buyer.ID, RoleID: buyer.RoleID},
		Timestamp: time.Now(),
		Payload: events.ToyPurchasedPayload{
			PurchaseID:           purchase.ID,
			ToyID:                purchase.ToyID,
			PriceCents:           purchase.PriceCents,
			Currency:             purchase.Currency,
			PaymentTransactionID: purchase.PaymentTransactionID,
		},
	})

	return purchase, nil
}

// ListMine returns the purchases of the account in the ambient context.
func (s *PurchaseService) ListMine(ctx context.Context) ([]*domain.Purchase, error) {
	buyer := reqctx.MustFromContext(ctx).Account()
	return s.purchases.ListByAccount(ctx, buyer.ID)
}

// ListAll returns every purchase; route policy restricts this to administrators.
func (s *PurchaseService) ListAll(ctx context.Context) ([]*domain.Purchase, error) {
	return s.purchases.ListAll(ctx)
}
