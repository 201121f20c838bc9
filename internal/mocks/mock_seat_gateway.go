package mocks

import (
	"context"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

type MockSeatGateway struct {
	FetchSeatsFunc  func(ctx context.Context, window domain.ViewWindow, filters domain.SeatFilters) (*domain.SeatSnapshot, error)
	HoldSeatFunc    func(ctx context.Context, seatID int64, window domain.ViewWindow) error
	ReleaseSeatFunc func(ctx context.Context, seatID int64) error
	ReserveFunc     func(ctx context.Context, seatIDs []int64, window domain.ViewWindow) error
}

func (m *MockSeatGateway) FetchSeats(
	ctx context.Context,
	window domain.ViewWindow,
	filters domain.SeatFilters) (*domain.SeatSnapshot, error) {

	return m.FetchSeatsFunc(ctx, window, filters)
}

func (m *MockSeatGateway) HoldSeat(ctx context.Context, seatID int64, window domain.ViewWindow) error {
	return m.HoldSeatFunc(ctx, seatID, window)
}

func (m *MockSeatGateway) ReleaseSeat(ctx context.Context, seatID int64) error {
	return m.ReleaseSeatFunc(ctx, seatID)
}

func (m *MockSeatGateway) Reserve(ctx context.Context, seatIDs []int64, window domain.ViewWindow) error {
	return m.ReserveFunc(ctx, seatIDs, window)
}
