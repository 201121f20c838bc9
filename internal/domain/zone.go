package domain

import "context"

// Zone is one branch of the study cafe. Seats belong to exactly one zone.
type Zone struct {
	ID          int64  `json:"id"`
	Name        string `json:"zoneName"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	SeatCount   int    `json:"seatCount,omitempty"`
}

type ZoneGateway interface {
	Zones(ctx context.Context) ([]Zone, error)
	Zone(ctx context.Context, zoneID int64) (*Zone, error)
}
