package payment

import (
	"context"
	"errors"
	"testing"
)

func TestStubGateway_Charge(t *testing.T) {
	tests := []struct {
		name        string
		req         ChargeRequest
		wantErr     error
		wantTransID bool
	}{
		{
			name:        "approved",
			req:         ChargeRequest{CardNumber: "4242424242424242", ExpirationDate: "12/2030", AmountCents: 4999, Currency: "USD"},
			wantTransID: true,
		},
		{
			name:        "approved with spaces",
			req:         ChargeRequest{CardNumber: "4242 4242 4242 4242", ExpirationDate: "12/2030", AmountCents: 100, Currency: "USD"},
			wantTransID: true,
		},
		{
			name:    "reserved decline card",
			req:     ChargeRequest{CardNumber: "0000000000000000", ExpirationDate: "12/2030", AmountCents: 100, Currency: "USD"},
			wantErr: ErrCardDeclined,
		},
		{
			name:    "missing card number",
			req:     ChargeRequest{ExpirationDate: "12/2030", AmountCents: 100, Currency: "USD"},
			wantErr: ErrCardDeclined,
		},
		{
			name:    "missing expiration",
			req:     ChargeRequest{CardNumber: "4242424242424242", AmountCents: 100, Currency: "USD"},
			wantErr: ErrCardDeclined,
		},
	}

	gateway := NewStubGateway()

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			transactionID, err := gateway.Charge(context.Background(), test.req)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Charge() error = %v, want %v", err, test.wantErr)
			}
			if test.wantTransID && transactionID == "" {
				t.Error("Charge() should return a transaction id")
			}
		})
	}
}
