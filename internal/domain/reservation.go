package domain

import "context"

// ReservationSummary is one confirmed reservation of the current user, as
// listed on the "my reservations" page.
type ReservationSummary struct {
	ID        int64     `json:"id"`
	ZoneID    int64     `json:"zoneId"`
	ZoneName  string    `json:"zoneName"`
	SeatID    int64     `json:"seatId"`
	SeatName  string    `json:"seatName"`
	StartTime LocalTime `json:"startTime"`
	EndTime   LocalTime `json:"endTime"`
	Status    string    `json:"status,omitempty"`
}

type ReservationGateway interface {
	MyReservations(ctx context.Context) ([]ReservationSummary, error)
}
