// Package push maintains the long-lived subscription to a zone's seat-event
// channel. The backend publishes every hold, release, expiry, and
// reservation as a SeatEvent on seat-events:<zoneId>; this listener feeds
// them to the view and resynchronizes after every (re)connect.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

// ReconnectDelay is fixed; there is no backoff growth and no retry limit.
// The subscription only ends when the view window changes or the view closes.
const ReconnectDelay = 5 * time.Second

// Channel names the zone-scoped pub/sub channel.
func Channel(zoneID int64) string {
	return fmt.Sprintf("seat-events:%d", zoneID)
}

type Listener struct {
	client redis.UniversalClient
	zoneID int64
	logger *slog.Logger
	delay  time.Duration

	// onConnect fires once per successful subscribe, before any events are
	// delivered; the owner uses it to fetch a snapshot covering whatever was
	// missed while disconnected.
	onConnect func()
	onEvent   func(domain.SeatEvent)
}

type Option func(*Listener)

// WithReconnectDelay shortens the retry delay, mostly for tests.
func WithReconnectDelay(d time.Duration) Option {
	return func(l *Listener) { l.delay = d }
}

func NewListener(
	client redis.UniversalClient,
	zoneID int64,
	logger *slog.Logger,
	onConnect func(),
	onEvent func(domain.SeatEvent),
	opts ...Option,
) *Listener {

	l := &Listener{
		client:    client,
		zoneID:    zoneID,
		logger:    logger,
		delay:     ReconnectDelay,
		onConnect: onConnect,
		onEvent:   onEvent,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Run blocks until ctx is cancelled, cycling
// connecting -> subscribed -> (delay) -> connecting forever. Teardown is
// best-effort; a failed unsubscribe is swallowed.
func (l *Listener) Run(ctx context.Context) {
	channel := Channel(l.zoneID)

	for {
		if ctx.Err() != nil {
			return
		}

		pubsub := l.client.Subscribe(ctx, channel)

		if _, err := pubsub.Receive(ctx); err != nil {
			_ = pubsub.Close()
			if ctx.Err() != nil {
				return
			}
			l.logger.Warn("seat event subscribe failed", "channel", channel, "error", err)
			if !sleep(ctx, l.delay) {
				return
			}
			continue
		}

		l.logger.Info("subscribed to seat events", "channel", channel)
		l.onConnect()

		l.consume(ctx, pubsub)
		_ = pubsub.Close()

		if ctx.Err() != nil {
			return
		}
		l.logger.Warn("seat event stream ended, reconnecting", "channel", channel, "delay", l.delay)
		if !sleep(ctx, l.delay) {
			return
		}
	}
}

// consume delivers messages until the subscription dies. Reading with
// ReceiveMessage keeps transport failures visible: the buffered Channel()
// wrapper re-subscribes internally after a dropped connection, which would
// skip the resync that every reconnect must trigger.
func (l *Listener) consume(ctx context.Context, pubsub *redis.PubSub) {
	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			return
		}
		l.handle(msg.Payload)
	}
}

// handle decodes and validates one message. Anything malformed is logged and
// dropped; correctness is restored by the polling backstop, never by
// crashing the listener.
func (l *Listener) handle(payload string) {
	ev, err := parseSeatEvent([]byte(payload))
	if err != nil {
		l.logger.Warn("dropping seat event", "error", err)
		return
	}

	if ev.ZoneID != 0 && ev.ZoneID != l.zoneID {
		return
	}

	l.onEvent(ev)
}

func parseSeatEvent(payload []byte) (domain.SeatEvent, error) {
	var ev domain.SeatEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return ev, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}
	if err := ev.Validate(); err != nil {
		return ev, err
	}
	return ev, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
