package seatview

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/jaeyoon222/PlanA/internal/domain"
	"github.com/jaeyoon222/PlanA/internal/mocks"
)

const (
	testViewer = domain.UserID("42")
	testZone   = int64(3)
)

func testWindow() domain.ViewWindow {
	start := time.Now().Add(2 * time.Hour).Truncate(time.Hour)
	return domain.ViewWindow{ZoneID: testZone, Start: start, End: start.Add(3 * time.Hour)}
}

func testSnapshot() *domain.SeatSnapshot {
	holdUntil := domain.NewLocalTime(time.Now().Add(10 * time.Minute))

	return &domain.SeatSnapshot{
		Seats: []domain.Seat{
			{ID: 1, Name: "A1", PosX: 0, PosY: 0, Status: domain.SeatAvailable},
			{ID: 2, Name: "A2", PosX: 1, PosY: 0, Status: domain.SeatHold, HoldUntil: &holdUntil},
			{ID: 3, Name: "B1", PosX: 0, PosY: 1, Status: domain.SeatHold, HoldUntil: &holdUntil},
			{ID: 4, Name: "B2", PosX: 1, PosY: 1, Status: domain.SeatReserved},
		},
		Reserved:    domain.NewSeatIDSet(4),
		Holding:     domain.NewSeatIDSet(2, 3),
		HoldingByMe: domain.NewSeatIDSet(2),
	}
}

type ViewTestSuite struct {
	suite.Suite
	gateway *mocks.MockSeatGateway
	view    *View
	cancel  context.CancelFunc
	fetches atomic.Int64
}

func TestViewSuite(t *testing.T) {
	suite.Run(t, new(ViewTestSuite))
}

func (s *ViewTestSuite) SetupTest() {
	s.fetches.Store(0)
	s.gateway = &mocks.MockSeatGateway{
		FetchSeatsFunc: func(ctx context.Context, window domain.ViewWindow, filters domain.SeatFilters) (*domain.SeatSnapshot, error) {
			s.fetches.Add(1)
			return testSnapshot(), nil
		},
	}

	view, err := New(Config{
		Window:       testWindow(),
		ViewerID:     testViewer,
		Gateway:      s.gateway,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		PollInterval: time.Hour,
	})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	s.view = view
	s.cancel = cancel

	view.Start(ctx)
	s.waitForSeats()
}

func (s *ViewTestSuite) TearDownTest() {
	s.view.Close()
	s.cancel()
}

// waitForSeats blocks until the initial snapshot has landed.
func (s *ViewTestSuite) waitForSeats() {
	s.Require().Eventually(func() bool {
		return len(s.view.State().Seats) > 0
	}, time.Second, 5*time.Millisecond)
}

func (s *ViewTestSuite) TestSnapshotSeedsSelectionFromHoldingByMe() {
	state := s.view.State()

	s.Len(state.Seats, 4)
	s.Equal([]int64{2}, state.Selection)
}

func (s *ViewTestSuite) TestSnapshotReplacesStateWholesale() {
	s.view.ApplyEvent(domain.SeatEvent{
		SeatIDs: []int64{1}, Status: domain.SeatHold, ByUserID: testViewer,
	})
	s.Equal([]int64{1, 2}, s.view.State().Selection)

	// The next snapshot does not merge; the server's view wins outright.
	s.view.Refresh()
	s.Require().Eventually(func() bool {
		state := s.view.State()
		return len(state.Selection) == 1 && state.Selection[0] == 2
	}, time.Second, 5*time.Millisecond)
}

func (s *ViewTestSuite) TestEventHoldByViewerJoinsSelection() {
	s.view.ApplyEvent(domain.SeatEvent{
		SeatIDs: []int64{1}, Status: domain.SeatHold, ByUserID: testViewer, ZoneID: testZone,
	})

	state := s.view.State()
	s.Equal([]int64{1, 2}, state.Selection)
	s.Equal(domain.SeatHold, seatByID(s.T(), state, 1).Status)
}

func (s *ViewTestSuite) TestEventHoldByOtherLeavesSelection() {
	s.view.ApplyEvent(domain.SeatEvent{
		SeatIDs: []int64{1}, Status: domain.SeatHold, ByUserID: "99",
	})

	state := s.view.State()
	s.Equal([]int64{2}, state.Selection)
	s.Equal(domain.SeatHold, seatByID(s.T(), state, 1).Status)
}

func (s *ViewTestSuite) TestEventAvailableClearsSelectionAndExpiry() {
	s.view.ApplyEvent(domain.SeatEvent{
		SeatIDs: []int64{2, 3}, Status: domain.SeatAvailable,
	})

	state := s.view.State()
	s.Empty(state.Selection)

	for _, id := range []int64{2, 3} {
		seat := seatByID(s.T(), state, id)
		s.Equal(domain.SeatAvailable, seat.Status)
		s.Nil(seat.HoldUntil)
	}
}

func (s *ViewTestSuite) TestEventReservedClearsExpiry() {
	s.view.ApplyEvent(domain.SeatEvent{
		SeatIDs: []int64{3}, Status: domain.SeatReserved, ByUserID: "99",
	})

	seat := seatByID(s.T(), s.view.State(), 3)
	s.Equal(domain.SeatReserved, seat.Status)
	s.Nil(seat.HoldUntil)
}

func (s *ViewTestSuite) TestEventHoldWithoutExpiryKeepsExisting() {
	before := seatByID(s.T(), s.view.State(), 2)
	s.Require().NotNil(before.HoldUntil)

	s.view.ApplyEvent(domain.SeatEvent{
		SeatIDs: []int64{2}, Status: domain.SeatHold, ByUserID: "99",
	})

	after := seatByID(s.T(), s.view.State(), 2)
	s.Require().NotNil(after.HoldUntil)
	if diff := cmp.Diff(before.HoldUntil.Time, after.HoldUntil.Time); diff != "" {
		s.Failf("holdUntil changed", "(-before +after):\n%s", diff)
	}
}

func (s *ViewTestSuite) TestEventForUnknownSeatIsIgnored() {
	before := s.view.State()

	s.view.ApplyEvent(domain.SeatEvent{
		SeatIDs: []int64{999}, Status: domain.SeatReserved,
	})

	if diff := cmp.Diff(before, s.view.State()); diff != "" {
		s.Failf("state changed", "(-before +after):\n%s", diff)
	}
}

func (s *ViewTestSuite) TestEventForAnotherZoneIsIgnored() {
	before := s.view.State()

	s.view.ApplyEvent(domain.SeatEvent{
		SeatIDs: []int64{1}, Status: domain.SeatReserved, ZoneID: testZone + 1,
	})

	if diff := cmp.Diff(before, s.view.State()); diff != "" {
		s.Failf("state changed", "(-before +after):\n%s", diff)
	}
}

func (s *ViewTestSuite) TestMalformedEventIsDropped() {
	before := s.view.State()

	s.view.ApplyEvent(domain.SeatEvent{SeatIDs: nil, Status: domain.SeatReserved})
	s.view.ApplyEvent(domain.SeatEvent{SeatIDs: []int64{1}, Status: "exploded"})

	if diff := cmp.Diff(before, s.view.State()); diff != "" {
		s.Failf("state changed", "(-before +after):\n%s", diff)
	}
}

func (s *ViewTestSuite) TestFailedRefreshKeepsCurrentState() {
	before := s.view.State()

	s.gateway.FetchSeatsFunc = func(ctx context.Context, window domain.ViewWindow, filters domain.SeatFilters) (*domain.SeatSnapshot, error) {
		s.fetches.Add(1)
		return nil, fmt.Errorf("backend down")
	}

	fetched := s.fetches.Load()
	s.view.Refresh()
	s.Require().Eventually(func() bool {
		return s.fetches.Load() > fetched
	}, time.Second, 5*time.Millisecond)

	if diff := cmp.Diff(before, s.view.State()); diff != "" {
		s.Failf("state changed after failed refresh", "(-before +after):\n%s", diff)
	}
}

func (s *ViewTestSuite) TestNotifyVisibleTriggersRefresh() {
	fetched := s.fetches.Load()

	s.view.NotifyVisible()

	s.Require().Eventually(func() bool {
		return s.fetches.Load() > fetched
	}, time.Second, 5*time.Millisecond)
}

func (s *ViewTestSuite) TestClosedViewDropsEverything() {
	s.view.Close()

	// Must not block, must not mutate.
	s.view.ApplyEvent(domain.SeatEvent{
		SeatIDs: []int64{1}, Status: domain.SeatReserved,
	})

	s.Equal(State{}, s.view.State())
}

func TestViewWithoutViewerStaysInert(t *testing.T) {
	var fetches atomic.Int64
	gateway := &mocks.MockSeatGateway{
		FetchSeatsFunc: func(ctx context.Context, window domain.ViewWindow, filters domain.SeatFilters) (*domain.SeatSnapshot, error) {
			fetches.Add(1)
			return testSnapshot(), nil
		},
	}

	view, err := New(Config{
		Window:       testWindow(),
		Gateway:      gateway,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		PollInterval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	view.Start(ctx)
	defer view.Close()

	time.Sleep(50 * time.Millisecond)

	if got := fetches.Load(); got != 0 {
		t.Errorf("expected no fetches without a viewer, got %d", got)
	}
}

func seatByID(t *testing.T, state State, id int64) domain.Seat {
	t.Helper()
	for _, seat := range state.Seats {
		if seat.ID == id {
			return seat
		}
	}
	t.Fatalf("seat %d not in state", id)
	return domain.Seat{}
}
