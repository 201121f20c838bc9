package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

type seatsResponse struct {
	Seats              []domain.Seat `json:"seats"`
	ReservedSeatIDs    []int64       `json:"reservedSeatIds"`
	HoldingSeatIDs     []int64       `json:"holdingSeatIds"`
	HoldingByMeSeatIDs []int64       `json:"holdingByMeSeatIds"`
}

// FetchSeats reads one point-in-time snapshot of the zone for the window.
// Absent id-array fields mean empty sets, never an error. On any failure the
// caller's current state must stay as it is; FetchSeats returns nothing
// partial.
func (c *Client) FetchSeats(ctx context.Context, window domain.ViewWindow, filters domain.SeatFilters) (*domain.SeatSnapshot, error) {
	params := url.Values{}
	params.Set("zoneId", strconv.FormatInt(window.ZoneID, 10))
	params.Set("startTime", window.StartParam())
	params.Set("endTime", window.EndParam())

	if filters.WindowSide != nil {
		params.Set("windowSide", strconv.FormatBool(*filters.WindowSide))
	}
	if filters.Outlet != nil {
		params.Set("outlet", strconv.FormatBool(*filters.Outlet))
	}
	if filters.Quiet != nil {
		params.Set("quiet", strconv.FormatBool(*filters.Quiet))
	}

	var resp seatsResponse
	if err := c.get(ctx, "/api/seats?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetch seats: %w", err)
	}

	return &domain.SeatSnapshot{
		Seats:       resp.Seats,
		Reserved:    domain.NewSeatIDSet(resp.ReservedSeatIDs...),
		Holding:     domain.NewSeatIDSet(resp.HoldingSeatIDs...),
		HoldingByMe: domain.NewSeatIDSet(resp.HoldingByMeSeatIDs...),
	}, nil
}

// HoldSeat asks the backend to hold one seat for the window.
func (c *Client) HoldSeat(ctx context.Context, seatID int64, window domain.ViewWindow) error {
	body := struct {
		SeatID    int64  `json:"seatId"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}{seatID, window.StartParam(), window.EndParam()}

	return c.post(ctx, "/api/seats/hold", body, nil)
}

// ReleaseSeat gives up a hold owned by the current user.
func (c *Client) ReleaseSeat(ctx context.Context, seatID int64) error {
	body := struct {
		SeatID int64 `json:"seatId"`
	}{seatID}

	return c.post(ctx, "/api/seats/release", body, nil)
}

// Reserve converts the held seats into a confirmed reservation.
func (c *Client) Reserve(ctx context.Context, seatIDs []int64, window domain.ViewWindow) error {
	body := struct {
		SeatIDs   []int64 `json:"seatIds"`
		StartTime string  `json:"startTime"`
		EndTime   string  `json:"endTime"`
	}{seatIDs, window.StartParam(), window.EndParam()}

	return c.post(ctx, "/api/reserve", body, nil)
}
