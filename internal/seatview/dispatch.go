package seatview

import (
	"context"
	"fmt"
	"time"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

// ToggleSeat turns a click on a seat into a hold, a release, or a rejection:
//
//   - available seat: hold it, optimistically mark it selected.
//   - reserved seat: rejected, in use by another user.
//   - held by the viewer: release it, optimistically unmark it.
//   - held by someone else: rejected.
//
// Every successful request is followed by a refresh; the optimistic patch is
// provisional and the next authoritative snapshot confirms or corrects it.
// A failed request changes nothing locally and returns the server's message.
func (v *View) ToggleSeat(ctx context.Context, seatID int64) error {
	if v.window.Start.Before(time.Now()) {
		return domain.ErrPastStartTime
	}

	seat, selected, ok := v.seatByID(seatID)
	if !ok {
		return fmt.Errorf("unknown seat %d", seatID)
	}

	switch {
	case seat.Status == domain.SeatAvailable:
		if err := v.gateway.HoldSeat(ctx, seatID, v.window); err != nil {
			return err
		}
		v.post(func() { v.markHeld(seatID) })
		v.Refresh()
		return nil

	case seat.Status == domain.SeatReserved:
		return domain.ErrSeatInUse

	case seat.Status == domain.SeatHold && selected:
		if err := v.gateway.ReleaseSeat(ctx, seatID); err != nil {
			return err
		}
		v.post(func() { v.markReleased(seatID) })
		v.Refresh()
		return nil

	default:
		return domain.ErrSeatHeldByOther
	}
}

// SubmitReservation turns the current selection into a reservation request.
// Preconditions are checked client-side and never reach the server.
func (v *View) SubmitReservation(ctx context.Context) error {
	now := time.Now()
	if v.window.Start.Before(now) {
		return domain.ErrPastStartTime
	}
	if !v.window.End.After(v.window.Start) {
		return domain.ErrEndBeforeStart
	}

	seatIDs := v.State().Selection
	if len(seatIDs) == 0 {
		return domain.ErrNoSeatsSelected
	}

	if err := v.gateway.Reserve(ctx, seatIDs, v.window); err != nil {
		return err
	}

	v.post(func() { v.selection = domain.NewSeatIDSet() })
	v.Refresh()
	return nil
}

func (v *View) seatByID(seatID int64) (domain.Seat, bool, bool) {
	type answer struct {
		seat     domain.Seat
		selected bool
		ok       bool
	}

	reply := make(chan answer, 1)
	v.post(func() {
		i, ok := v.seatIndex[seatID]
		if !ok {
			reply <- answer{}
			return
		}
		reply <- answer{seat: v.seats[i], selected: v.selection.Has(seatID), ok: true}
	})

	select {
	case a := <-reply:
		return a.seat, a.selected, a.ok
	case <-v.closed:
		return domain.Seat{}, false, false
	}
}

// markHeld is the optimistic half of a hold: selected now, status hold, no
// expiry yet. The authoritative expiry arrives with the next event or
// snapshot.
func (v *View) markHeld(seatID int64) {
	v.selection.Add(seatID)
	if i, ok := v.seatIndex[seatID]; ok {
		v.seats[i].Status = domain.SeatHold
	}
}

func (v *View) markReleased(seatID int64) {
	v.selection.Remove(seatID)
	if i, ok := v.seatIndex[seatID]; ok {
		v.seats[i].Status = domain.SeatAvailable
		v.seats[i].HoldUntil = nil
	}
}
