package api

import (
	"context"
	"fmt"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

// VerifyPayment asks the backend to cross-check a provider receipt against
// the payment gateway and, on success, convert the held seats into a paid
// reservation.
func (c *Client) VerifyPayment(ctx context.Context, verification domain.PaymentVerification) error {
	return c.post(ctx, "/api/payments/verify", verification, nil)
}

func (c *Client) MyReservations(ctx context.Context) ([]domain.ReservationSummary, error) {
	var reservations []domain.ReservationSummary
	if err := c.get(ctx, "/api/reservations", &reservations); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}
