package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		now      time.Time
		days     int
		wantFrom string
		wantTo   string
	}{
		{
			name:     "one week",
			now:      time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC),
			days:     7,
			wantFrom: "2024-03-08",
			wantTo:   "2024-03-15",
		},
		{
			name:     "crosses month and leap day",
			now:      time.Date(2024, 3, 3, 0, 0, 1, 0, time.UTC),
			days:     7,
			wantFrom: "2024-02-25",
			wantTo:   "2024-03-03",
		},
		{
			name:     "crosses year",
			now:      time.Date(2025, 1, 2, 23, 59, 59, 0, time.UTC),
			days:     7,
			wantFrom: "2024-12-26",
			wantTo:   "2025-01-02",
		},
		{
			name:     "zero days",
			now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			days:     0,
			wantFrom: "2025-06-01",
			wantTo:   "2025-06-01",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			from, to := Dates(tt.now, tt.days)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)

			// from は to のちょうど days 暦日前
			f, err := time.Parse(DateLayout, from)
			require.NoError(t, err)
			tt2, err := time.Parse(DateLayout, to)
			require.NoError(t, err)
			assert.Equal(t, tt2, f.AddDate(0, 0, tt.days))
		})
	}
}

func TestUnix(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 13, 45, 30, 0, time.UTC)

	for _, days := range []int{7, 30, 90, 365} {
		from, to := Unix(now, days)
		assert.Equal(t, now.Unix(), to)
		assert.Equal(t, int64(days)*86400, to-from, "days=%d", days)
	}
}

func TestUnix_AcrossDSTIsExact(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// 2024-03-10 に夏時間へ切り替わる
	now := time.Date(2024, 3, 14, 9, 30, 0, 0, loc)

	from, to := Unix(now, 7)
	assert.Equal(t, int64(7*86400), to-from)
}

func TestToday(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-03-15", Today(time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)))
}
