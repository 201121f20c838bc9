package domain

import "context"

// PaymentVerification is the payload the backend cross-checks against the
// payment gateway after the provider reports success.
type PaymentVerification struct {
	ImpUID      string    `json:"impUid"`
	MerchantUID string    `json:"merchantUid"`
	UserID      UserID    `json:"userId"`
	SeatIDs     []int64   `json:"seatIds"`
	StartTime   LocalTime `json:"startTime"`
	EndTime     LocalTime `json:"endTime"`
	Amount      int64     `json:"amount"`
	ZoneName    string    `json:"zoneName"`
}

type PaymentGateway interface {
	VerifyPayment(ctx context.Context, verification PaymentVerification) error
}
