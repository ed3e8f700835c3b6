package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrCardDeclined signals that the gateway refused the charge.
var ErrCardDeclined = errors.New("payment: card declined")

// ChargeRequest describes a card charge.
type ChargeRequest struct {
	CardNumber     string
	ExpirationDate string // MM/YYYY
	AmountCents    int64
	Currency       string
}

// Gateway models the external credit-card processor as an opaque capability:
// a successful charge yields only a transaction identifier.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (transactionID string, err error)
}

// declineCardNumber always declines, for exercising the failure path.
const declineCardNumber = "0000000000000000"

type stubGateway struct{}

// NewStubGateway returns an in-process gateway that approves every charge
// except the reserved all-zeros test card.
func NewStubGateway() Gateway {
	return &stubGateway{}
}

func (g *stubGateway) Charge(_ context.Context, req ChargeRequest) (string, error) {
	number := strings.ReplaceAll(req.CardNumber, " ", "")
	if number == "" || req.ExpirationDate == "" {
		return "", ErrCardDeclined
	}
	if number == declineCardNumber {
		return "", ErrCardDeclined
	}
	return uuid.NewString(), nil
}
