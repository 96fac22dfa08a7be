package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "08:30", want: 510},
		{name: "last minute of day", input: "23:59", want: 1439},
		{name: "missing colon", input: "0830", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "non-numeric", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClock(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuietHoursValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  QuietHours
		wantErr bool
	}{
		{
			name:   "valid window",
			window: QuietHours{Enabled: true, Start: "22:00", End: "06:00"},
		},
		{
			name:    "bad start",
			window:  QuietHours{Enabled: true, Start: "25:00", End: "06:00"},
			wantErr: true,
		},
		{
			name:    "bad end",
			window:  QuietHours{Enabled: true, Start: "22:00", End: "6pm"},
			wantErr: true,
		},
		{
			name:   "disabled window skips clock checks",
			window: QuietHours{Enabled: false, Start: "garbage", End: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuietHoursContains(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2026, time.March, 10, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		window QuietHours
		t      time.Time
		want   bool
	}{
		{
			name:   "inside same-day window",
			window: QuietHours{Enabled: true, Start: "09:00", End: "17:00"},
			t:      at(12, 0),
			want:   true,
		},
		{
			name:   "before same-day window",
			window: QuietHours{Enabled: true, Start: "09:00", End: "17:00"},
			t:      at(8, 59),
			want:   false,
		},
		{
			name:   "end is exclusive",
			window: QuietHours{Enabled: true, Start: "09:00", End: "17:00"},
			t:      at(17, 0),
			want:   false,
		},
		{
			name:   "start is inclusive",
			window: QuietHours{Enabled: true, Start: "09:00", End: "17:00"},
			t:      at(9, 0),
			want:   true,
		},
		{
			name:   "overnight window late evening",
			window: QuietHours{Enabled: true, Start: "22:00", End: "06:00"},
			t:      at(23, 30),
			want:   true,
		},
		{
			name:   "overnight window early morning",
			window: QuietHours{Enabled: true, Start: "22:00", End: "06:00"},
			t:      at(2, 15),
			want:   true,
		},
		{
			name:   "overnight window daytime gap",
			window: QuietHours{Enabled: true, Start: "22:00", End: "06:00"},
			t:      at(12, 0),
			want:   false,
		},
		{
			name:   "overnight window end boundary",
			window: QuietHours{Enabled: true, Start: "22:00", End: "06:00"},
			t:      at(6, 0),
			want:   false,
		},
		{
			name:   "zero-length window never matches",
			window: QuietHours{Enabled: true, Start: "10:00", End: "10:00"},
			t:      at(10, 0),
			want:   false,
		},
		{
			name:   "disabled window never matches",
			window: QuietHours{Enabled: false, Start: "00:00", End: "23:59"},
			t:      at(12, 0),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Contains(tt.t))
		})
	}
}
