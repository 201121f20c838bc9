package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// UserID is an opaque user identity. The backend is inconsistent about the
// wire type (sometimes a JSON number, sometimes a string), so it normalizes
// to a string and is compared as one.
type UserID string

func (u *UserID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*u = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*u = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*u = UserID(n.String())
		return nil
	}

	return fmt.Errorf("user id must be a string or a number, got %s", data)
}

func (u UserID) String() string { return string(u) }

func UserIDFromInt(n int64) UserID {
	return UserID(strconv.FormatInt(n, 10))
}

// SeatEvent is one batch notification from the push channel. Every listed
// seat moves to the same status; the protocol never mixes statuses in a
// single event.
type SeatEvent struct {
	SeatIDs   []int64    `json:"seatIds"`
	Status    SeatStatus `json:"status"`
	HoldUntil *LocalTime `json:"holdUntil,omitempty"`
	ByUserID  UserID     `json:"byUserId,omitempty"`
	EventType string     `json:"eventType,omitempty"`
	ZoneID    int64      `json:"zoneId,omitempty"`
}

// Validate enforces the minimum shape a usable event must have. Events that
// fail here are dropped by the listener; the polling backstop restores any
// state they carried.
func (e SeatEvent) Validate() error {
	if len(e.SeatIDs) == 0 {
		return fmt.Errorf("%w: empty seat id list", ErrMalformedEvent)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrMalformedEvent, e.Status)
	}
	return nil
}
