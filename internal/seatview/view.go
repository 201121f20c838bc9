// Package seatview keeps a zone's seat grid consistent with server state
// under concurrent updates. Four independent sources mutate the same view:
// push events, the polling interval, the foreground-visibility trigger, and
// the user's own optimistic actions. A single goroutine owns the state bag;
// every source posts a message onto one ordered mailbox, so there are no
// locks and no torn reads.
package seatview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

// DefaultPollInterval is the correctness backstop: even with a dead push
// channel, staleness is bounded by one poll cycle.
const DefaultPollInterval = 15 * time.Second

type Config struct {
	Window   domain.ViewWindow
	Filters  domain.SeatFilters
	ViewerID domain.UserID

	Gateway domain.SeatGateway
	Logger  *slog.Logger

	// PollInterval defaults to DefaultPollInterval when zero.
	PollInterval time.Duration
}

// View is the live seat grid for exactly one view window. Changing zone,
// date, or times means closing this View and starting a new one; no state
// carries over.
type View struct {
	gateway      domain.SeatGateway
	logger       *slog.Logger
	window       domain.ViewWindow
	filters      domain.SeatFilters
	viewerID     domain.UserID
	pollInterval time.Duration

	mailbox   chan func()
	closed    chan struct{}
	closeOnce sync.Once

	ctx context.Context

	// Owned by the run goroutine. Never touched from outside it.
	seats     []domain.Seat
	seatIndex map[int64]int
	selection domain.SeatIDSet
}

// State is a copy of the view for rendering. Selection is sorted.
type State struct {
	Seats     []domain.Seat
	Selection []int64
}

func New(cfg Config) (*View, error) {
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("seatview: gateway is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("seatview: logger is required")
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	return &View{
		gateway:      cfg.Gateway,
		logger:       cfg.Logger,
		window:       cfg.Window,
		filters:      cfg.Filters,
		viewerID:     cfg.ViewerID,
		pollInterval: cfg.PollInterval,
		mailbox:      make(chan func(), 64),
		closed:       make(chan struct{}),
		selection:    domain.NewSeatIDSet(),
	}, nil
}

// Start launches the state owner and fires the initial snapshot fetch.
// The polling ticker only runs when both the viewer identity and a valid
// zone are known; otherwise the view stays inert until Close.
func (v *View) Start(ctx context.Context) {
	v.ctx = ctx
	go v.run(ctx)
	v.Refresh()
}

func (v *View) Close() {
	v.closeOnce.Do(func() { close(v.closed) })
}

func (v *View) Window() domain.ViewWindow { return v.window }

func (v *View) run(ctx context.Context) {
	var tick <-chan time.Time
	if v.eligible() {
		ticker := time.NewTicker(v.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-v.closed:
			return
		case <-tick:
			v.Refresh()
		case fn := <-v.mailbox:
			fn()
		}
	}
}

func (v *View) eligible() bool {
	return v.viewerID != "" && v.window.ZoneID > 0
}

// post delivers fn to the run goroutine, or drops it once the view is
// closed. A result that resolves after Close never mutates anything.
func (v *View) post(fn func()) {
	select {
	case v.mailbox <- fn:
	case <-v.closed:
	}
}

// Refresh fetches a snapshot off the loop and posts the result. Overlapping
// refreshes are fine: each snapshot is self-consistent and fully replaces the
// state, so the last one to resolve wins.
func (v *View) Refresh() {
	if !v.eligible() {
		v.logger.Debug("skipping refresh, viewer or zone not known yet")
		return
	}

	ctx := v.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		snap, err := v.gateway.FetchSeats(ctx, v.window, v.filters)
		if err != nil {
			v.logger.Warn("seat refresh failed", "window", v.window.String(), "error", err)
			return
		}
		v.post(func() { v.applySnapshot(snap) })
	}()
}

// NotifyVisible is the foreground-visibility trigger: one refresh each time
// the view returns to the foreground.
func (v *View) NotifyVisible() {
	v.Refresh()
}

// ApplyEvent hands a push-channel event to the state owner. Malformed events
// are logged and dropped; the next poll restores whatever they carried.
func (v *View) ApplyEvent(ev domain.SeatEvent) {
	v.post(func() { v.applyEvent(ev) })
}

// State returns a copy of the current grid and selection. The zero State
// comes back if the view is already closed.
func (v *View) State() State {
	reply := make(chan State, 1)
	v.post(func() {
		seats := make([]domain.Seat, len(v.seats))
		copy(seats, v.seats)
		reply <- State{Seats: seats, Selection: v.selection.IDs()}
	})

	select {
	case st := <-reply:
		return st
	case <-v.closed:
		return State{}
	}
}

// applySnapshot replaces the grid and selection wholesale. The selection is
// seeded from the server's held-by-me list; no merging with prior state.
func (v *View) applySnapshot(snap *domain.SeatSnapshot) {
	v.seats = snap.Seats
	v.seatIndex = make(map[int64]int, len(snap.Seats))
	for i, seat := range snap.Seats {
		v.seatIndex[seat.ID] = i
	}
	v.selection = snap.HoldingByMe.Clone()
}

func (v *View) applyEvent(ev domain.SeatEvent) {
	if err := ev.Validate(); err != nil {
		v.logger.Warn("dropping seat event", "error", err)
		return
	}
	if ev.ZoneID != 0 && ev.ZoneID != v.window.ZoneID {
		return
	}

	// Selection first, then seat records (the reconciler reads nothing from
	// the grid, but the ordering matches the contract).
	v.selection = ReconcileSelection(v.selection, ev.Status, ev.SeatIDs, ev.ByUserID, v.viewerID)

	for _, id := range ev.SeatIDs {
		i, ok := v.seatIndex[id]
		if !ok {
			continue
		}
		seat := &v.seats[i]
		seat.Status = ev.Status

		switch {
		case ev.Status != domain.SeatHold:
			seat.HoldUntil = nil
		case ev.HoldUntil != nil:
			seat.HoldUntil = ev.HoldUntil
		}
		// A hold event without holdUntil keeps whatever expiry we had.
	}
}
