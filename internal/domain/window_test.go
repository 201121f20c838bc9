package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    time.Time
		wantErr bool
	}{
		{
			name:    "wire format",
			payload: `"2026-09-02T09:05:00"`,
			want:    time.Date(2026, 9, 2, 9, 5, 0, 0, time.Local),
		},
		{
			name:    "fractional seconds",
			payload: `"2026-09-02T09:05:00.123"`,
			want:    time.Date(2026, 9, 2, 9, 5, 0, 123_000_000, time.Local),
		},
		{
			name:    "null",
			payload: `null`,
			want:    time.Time{},
		},
		{
			name:    "timezone suffix is rejected",
			payload: `"2026-09-02T09:05:00Z"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lt LocalTime
			err := json.Unmarshal([]byte(tt.payload), &lt)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, lt.Time.Equal(tt.want), "got %v, want %v", lt.Time, tt.want)
		})
	}
}

func TestLocalTimeMarshalHasNoTimezone(t *testing.T) {
	lt := NewLocalTime(time.Date(2026, 9, 2, 9, 5, 0, 0, time.Local))

	raw, err := json.Marshal(lt)
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-02T09:05:00"`, string(raw))
}

func TestViewWindowHours(t *testing.T) {
	day := func(h int) time.Time {
		return time.Date(2026, 9, 2, h, 0, 0, 0, time.Local)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{name: "three hours", start: day(9), end: day(12), want: 3},
		{name: "zero-length window", start: day(9), end: day(9), want: 0},
		{name: "inverted window floors at zero", start: day(12), end: day(9), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ViewWindow{ZoneID: 1, Start: tt.start, End: tt.end}
			assert.Equal(t, tt.want, w.Hours())
		})
	}
}
