package seatview

import "github.com/jaeyoon222/PlanA/internal/domain"

// ReconcileSelection decides how an incoming status change affects the set of
// seats the viewer currently holds. It is a pure function: the input set is
// never mutated, the result is always a fresh set.
//
//   - available: the hold was released or expired, the listed seats leave the
//     selection whether or not they were in it.
//   - hold by the viewer: the listed seats join the selection (idempotent).
//   - hold by anyone else, or reserved: the selection is untouched; those
//     seats were never the viewer's.
//
// Snapshot ingestion does not go through here: a snapshot carries the
// server's own holdingByMeSeatIds list, which replaces the selection
// directly.
func ReconcileSelection(
	current domain.SeatIDSet,
	status domain.SeatStatus,
	seatIDs []int64,
	actor domain.UserID,
	viewer domain.UserID,
) domain.SeatIDSet {

	next := current.Clone()

	switch {
	case status == domain.SeatAvailable:
		for _, id := range seatIDs {
			next.Remove(id)
		}
	case status == domain.SeatHold && actor != "" && viewer != "" && actor == viewer:
		for _, id := range seatIDs {
			next.Add(id)
		}
	}

	return next
}
