package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "08:00", want: 480},
		{in: "16:55", want: 1015},
		{in: "22:00", want: 1320},
		{in: "07:50:30", want: 470},
		{in: "00:00", want: 0},
		{in: "23:59", want: 1439},
		{in: " 09:15 ", want: 555},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestAtClockRollsIntoNextDay(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	got := AtClock(date, 29*60) // 05:00 next day
	assert.Equal(t, time.Date(2025, 3, 11, 5, 0, 0, 0, time.UTC), got)

	got = AtClock(date, 480)
	assert.Equal(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), got)
}

func TestMinutesBetweenClampsAtZero(t *testing.T) {
	a := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, 90, MinutesBetween(a, b))
	assert.Equal(t, 0, MinutesBetween(b, a))
	assert.Equal(t, 0, MinutesBetween(a, a))
}

func TestOverlapMinutes(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return AtClock(day, m) }

	// Work 08:00-17:00 against lunch 12:00-13:00.
	assert.Equal(t, 60, OverlapMinutes(at(480), at(1020), at(720), at(780)))
	// Disjoint intervals.
	assert.Equal(t, 0, OverlapMinutes(at(480), at(600), at(720), at(780)))
	// Touching endpoints contribute nothing.
	assert.Equal(t, 0, OverlapMinutes(at(480), at(720), at(720), at(780)))
	// Containment.
	assert.Equal(t, 10, OverlapMinutes(at(900), at(910), at(480), at(1020)))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "-", FormatMinutes(0))
	assert.Equal(t, "7:45", FormatMinutes(465))
	assert.Equal(t, "0:05", FormatMinutes(5))
	assert.Equal(t, "60:00", FormatMinutes(3600))
}
