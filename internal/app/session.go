package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jaeyoon222/PlanA/internal/domain"
	"github.com/jaeyoon222/PlanA/internal/push"
	"github.com/jaeyoon222/PlanA/internal/seatview"
)

// session is one open view window: the seat view actor plus its push
// subscription. Exactly one session is active at a time; opening a new
// window tears the old one down first.
type session struct {
	view   *seatview.View
	zone   *domain.Zone
	cancel context.CancelFunc
}

// openWindow swaps the active window. The old subscription and scheduler
// are stopped before anything new is established, and none of the old
// window's state survives.
func (app *Application) openWindow(ctx context.Context, zoneID int64, start, end time.Time, filters domain.SeatFilters) error {
	viewer := app.tokens.UserID()
	if viewer == "" {
		return domain.ErrAuthExpired
	}

	zone, err := app.client.Zone(ctx, zoneID)
	if err != nil {
		return fmt.Errorf("load zone: %w", err)
	}

	app.closeSession()

	window := domain.ViewWindow{ZoneID: zoneID, Start: start, End: end}

	view, err := seatview.New(seatview.Config{
		Window:       window,
		Filters:      filters,
		ViewerID:     viewer,
		Gateway:      app.client,
		Logger:       app.logger,
		PollInterval: app.config.PollInterval,
	})
	if err != nil {
		return err
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	view.Start(sessionCtx)

	listener := push.NewListener(
		app.redis,
		zoneID,
		app.logger,
		view.Refresh,
		view.ApplyEvent,
	)
	go listener.Run(sessionCtx)

	app.sessionMu.Lock()
	app.session = &session{view: view, zone: zone, cancel: cancel}
	app.sessionMu.Unlock()

	app.logger.Info("watching zone",
		"zone", zone.Name, "start", window.StartParam(), "end", window.EndParam())

	return nil
}

func (app *Application) closeSession() {
	app.sessionMu.Lock()
	s := app.session
	app.session = nil
	app.sessionMu.Unlock()

	if s == nil {
		return
	}

	s.cancel()
	s.view.Close()
}

func (app *Application) currentSession() *session {
	app.sessionMu.Lock()
	defer app.sessionMu.Unlock()
	return app.session
}
