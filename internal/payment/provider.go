// Package payment drives payment initiation: amount calculation, merchant
// UID minting, the provider hand-off, and the backend verification call that
// turns a paid checkout into a reservation.
package payment

import (
	"context"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

// CheckoutRequest is what the payment provider needs to collect the money.
type CheckoutRequest struct {
	MerchantUID string
	ItemName    string
	Amount      int64
	BuyerID     domain.UserID
	Detail      string
}

// Receipt is the provider's proof of payment; ImpUID is the provider-side
// transaction id the backend verifies against the gateway.
type Receipt struct {
	ImpUID      string
	MerchantUID string
}

type Provider interface {
	RequestPay(ctx context.Context, req CheckoutRequest) (*Receipt, error)
}
