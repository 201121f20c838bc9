package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

// DefaultHourlyRate is the per-seat, per-hour price in won.
const DefaultHourlyRate = 100

type Checkout struct {
	users    domain.UserGateway
	payments domain.PaymentGateway
	provider Provider
	logger   *slog.Logger

	hourlyRate decimal.Decimal
}

type CheckoutOption func(*Checkout)

func WithHourlyRate(rate int64) CheckoutOption {
	return func(c *Checkout) { c.hourlyRate = decimal.NewFromInt(rate) }
}

func NewCheckout(
	users domain.UserGateway,
	payments domain.PaymentGateway,
	provider Provider,
	logger *slog.Logger,
	opts ...CheckoutOption,
) *Checkout {

	c := &Checkout{
		users:      users,
		payments:   payments,
		provider:   provider,
		logger:     logger,
		hourlyRate: decimal.NewFromInt(DefaultHourlyRate),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Order is everything a checkout needs from the seat view.
type Order struct {
	Viewer    domain.UserID
	ZoneName  string
	Window    domain.ViewWindow
	SeatIDs   []int64
	SeatNames []string
}

// Amount prices an order: seats x whole hours x hourly rate.
func (c *Checkout) Amount(seatCount int, window domain.ViewWindow) int64 {
	return decimal.NewFromInt(int64(seatCount)).
		Mul(decimal.NewFromInt(int64(window.Hours()))).
		Mul(c.hourlyRate).
		IntPart()
}

// MerchantUID mints the order id the gateway and the backend correlate on.
func MerchantUID(viewer domain.UserID) string {
	return fmt.Sprintf("mid_%s_%s", viewer, uuid.NewString())
}

// Pay runs the whole initiation flow: profile check, preconditions, provider
// hand-off, backend verification. A profile without a phone number stops the
// flow before any money moves.
func (c *Checkout) Pay(ctx context.Context, order Order) (*Receipt, error) {
	user, err := c.users.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if strings.TrimSpace(user.Phone) == "" {
		return nil, domain.ErrPhoneRequired
	}

	now := time.Now()
	if order.Window.Start.Before(now) {
		return nil, domain.ErrPastStartTime
	}
	if !order.Window.End.After(order.Window.Start) {
		return nil, domain.ErrEndBeforeStart
	}
	if len(order.SeatIDs) == 0 {
		return nil, domain.ErrNoSeatsSelected
	}

	amount := c.Amount(len(order.SeatIDs), order.Window)
	merchantUID := MerchantUID(order.Viewer)
	seatNames := strings.Join(order.SeatNames, ", ")

	receipt, err := c.provider.RequestPay(ctx, CheckoutRequest{
		MerchantUID: merchantUID,
		ItemName:    "Study cafe seat reservation - " + seatNames,
		Amount:      amount,
		BuyerID:     order.Viewer,
		Detail:      c.orderDetail(order, seatNames),
	})
	if err != nil {
		return nil, fmt.Errorf("payment provider: %w", err)
	}

	verification := domain.PaymentVerification{
		ImpUID:      receipt.ImpUID,
		MerchantUID: receipt.MerchantUID,
		UserID:      order.Viewer,
		SeatIDs:     order.SeatIDs,
		StartTime:   domain.NewLocalTime(order.Window.Start),
		EndTime:     domain.NewLocalTime(order.Window.End),
		Amount:      amount,
		ZoneName:    order.ZoneName,
	}

	if err := c.payments.VerifyPayment(ctx, verification); err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	c.logger.Info("payment verified",
		"merchant_uid", merchantUID, "amount", amount, "seats", len(order.SeatIDs))

	return receipt, nil
}

func (c *Checkout) orderDetail(order Order, seatNames string) string {
	return strings.Join([]string{
		"Plan A",
		"- zone: " + order.ZoneName,
		"- seats: " + seatNames,
		"- start: " + order.Window.StartParam(),
		"- end: " + order.Window.EndParam(),
		fmt.Sprintf("- hours: %d", order.Window.Hours()),
	}, "\n")
}
