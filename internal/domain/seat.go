package domain

import (
	"context"
	"slices"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatHold      SeatStatus = "hold"
	SeatReserved  SeatStatus = "reserved"
)

// Valid reports whether the status is one of the three states the backend emits.
func (s SeatStatus) Valid() bool {
	switch s {
	case SeatAvailable, SeatHold, SeatReserved:
		return true
	}
	return false
}

// Seat is one seat of the currently viewed zone. Status and HoldUntil are
// scoped to the active time window; HoldUntil is set only while Status is
// SeatHold.
type Seat struct {
	ID        int64      `json:"id"`
	Name      string     `json:"seatName"`
	PosX      int        `json:"posX"`
	PosY      int        `json:"posY"`
	Status    SeatStatus `json:"status"`
	HoldUntil *LocalTime `json:"holdUntil,omitempty"`
}

// SeatSnapshot is one authoritative, self-consistent read of a zone for a
// time window. A snapshot always replaces the previous view state wholesale.
type SeatSnapshot struct {
	Seats       []Seat
	Reserved    SeatIDSet
	Holding     SeatIDSet
	HoldingByMe SeatIDSet
}

// SeatFilters narrows a snapshot fetch to seats with certain traits.
// Nil fields are omitted from the query.
type SeatFilters struct {
	WindowSide *bool
	Outlet     *bool
	Quiet      *bool
}

type SeatIDSet map[int64]struct{}

func NewSeatIDSet(ids ...int64) SeatIDSet {
	s := make(SeatIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s SeatIDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s SeatIDSet) Add(id int64)    { s[id] = struct{}{} }
func (s SeatIDSet) Remove(id int64) { delete(s, id) }

func (s SeatIDSet) Clone() SeatIDSet {
	out := make(SeatIDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the members in ascending order.
func (s SeatIDSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type SeatGateway interface {
	FetchSeats(ctx context.Context, window ViewWindow, filters SeatFilters) (*SeatSnapshot, error)
	HoldSeat(ctx context.Context, seatID int64, window ViewWindow) error
	ReleaseSeat(ctx context.Context, seatID int64) error
	Reserve(ctx context.Context, seatIDs []int64, window ViewWindow) error
}
