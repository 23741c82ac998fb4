//go:build unit

package deal_test

import (
	"testing"
	"time"

	"goeat-api/internal/domain/deal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mustWindow(t *testing.T, start, end string) *deal.TimeWindow {
	t.Helper()
	w, err := deal.ParseTimeWindow(strPtr(start), strPtr(end))
	require.NoError(t, err)
	return w
}

func mustDayOfWeek(t *testing.T, v int) *deal.DayOfWeek {
	t.Helper()
	d, err := deal.NewDayOfWeek(v)
	require.NoError(t, err)
	return &d
}

func TestNewDeal(t *testing.T) {
	restaurantID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		d, err := deal.NewDeal(restaurantID, "Happy Hour", "Half price drinks", "50% off", nil, nil, deal.DateRange{}, false)
		require.NoError(t, err)
		require.NotNil(t, d)

		assert.NotEqual(t, uuid.Nil, d.ID())
		assert.Equal(t, restaurantID, d.RestaurantID())
		assert.Equal(t, "Happy Hour", d.Title())
		assert.True(t, d.IsActive())
		assert.False(t, d.Featured())
	})

	t.Run("title is trimmed", func(t *testing.T) {
		d, err := deal.NewDeal(restaurantID, "  Lunch Set  ", "", "20% off", nil, nil, deal.DateRange{}, false)
		require.NoError(t, err)
		assert.Equal(t, "Lunch Set", d.Title())
	})

	t.Run("validation", func(t *testing.T) {
		testCases := []struct {
			name     string
			title    string
			discount string
			errIs    error
		}{
			{name: "empty title", title: "", discount: "50% off", errIs: deal.ErrEmptyTitle},
			{name: "whitespace title", title: "   ", discount: "50% off", errIs: deal.ErrEmptyTitle},
			{name: "title too long", title: string(make([]byte, deal.MaxTitleLength+1)), discount: "50% off", errIs: deal.ErrTitleTooLong},
			{name: "empty discount label", title: "Happy Hour", discount: "  ", errIs: deal.ErrEmptyDiscount},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := deal.NewDeal(restaurantID, tc.title, "", tc.discount, nil, nil, deal.DateRange{}, false)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestDealIsValidAt(t *testing.T) {
	restaurantID := uuid.New()

	// 2026-08-25 is a Tuesday.
	tuesday := func(hour, minute int) time.Time {
		return time.Date(2026, 8, 25, hour, minute, 0, 0, time.UTC)
	}

	newDeal := func(t *testing.T, dow *deal.DayOfWeek, w *deal.TimeWindow, r deal.DateRange) *deal.Deal {
		t.Helper()
		d, err := deal.NewDeal(restaurantID, "Taco Tuesday", "", "2-for-1", dow, w, r, false)
		require.NoError(t, err)
		return d
	}

	t.Run("unrestricted deal is always valid", func(t *testing.T) {
		d := newDeal(t, nil, nil, deal.DateRange{})
		assert.True(t, d.IsValidAt(tuesday(3, 0)))
		assert.True(t, d.IsValidAt(tuesday(23, 59)))
	})

	t.Run("deactivated deal is never valid", func(t *testing.T) {
		d := newDeal(t, nil, nil, deal.DateRange{})
		d.Deactivate()
		assert.False(t, d.IsValidAt(tuesday(12, 0)))
	})

	t.Run("time window bounds are inclusive", func(t *testing.T) {
		d := newDeal(t, nil, mustWindow(t, "11:00", "22:00"), deal.DateRange{})

		assert.False(t, d.IsValidAt(tuesday(10, 59)))
		assert.True(t, d.IsValidAt(tuesday(11, 0)))
		assert.True(t, d.IsValidAt(tuesday(16, 30)))
		assert.True(t, d.IsValidAt(tuesday(22, 0)))
		assert.False(t, d.IsValidAt(tuesday(22, 1)))
	})

	t.Run("day of week gates validity", func(t *testing.T) {
		d := newDeal(t, mustDayOfWeek(t, 2), nil, deal.DateRange{})

		assert.True(t, d.IsValidAt(tuesday(12, 0)))
		wednesday := tuesday(12, 0).AddDate(0, 0, 1)
		assert.False(t, d.IsValidAt(wednesday))
	})

	t.Run("day of week and window combine", func(t *testing.T) {
		d := newDeal(t, mustDayOfWeek(t, 2), mustWindow(t, "11:00", "22:00"), deal.DateRange{})

		assert.True(t, d.IsValidAt(tuesday(11, 0)))
		assert.False(t, d.IsValidAt(tuesday(9, 0)))
		monday := tuesday(12, 0).AddDate(0, 0, -1)
		assert.False(t, d.IsValidAt(monday))
	})

	t.Run("date range is inclusive of both endpoint days", func(t *testing.T) {
		from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		until := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
		r, err := deal.NewDateRange(&from, &until)
		require.NoError(t, err)
		d := newDeal(t, nil, nil, r)

		assert.True(t, d.IsValidAt(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)))
		assert.True(t, d.IsValidAt(tuesday(23, 59)))
		assert.False(t, d.IsValidAt(time.Date(2026, 8, 19, 23, 59, 0, 0, time.UTC)))
		assert.False(t, d.IsValidAt(time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("open-ended date range", func(t *testing.T) {
		from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		r, err := deal.NewDateRange(&from, nil)
		require.NoError(t, err)
		d := newDeal(t, nil, nil, r)

		assert.False(t, d.IsValidAt(time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)))
		assert.True(t, d.IsValidAt(time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)))
	})
}

func TestParseClockTime(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "HH:MM", input: "09:30", want: "09:30"},
		{name: "HH:MM:SS drops seconds", input: "14:45:59", want: "14:45"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "negative hour", input: "-1:00", wantErr: true},
		{name: "not a time", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ct, err := deal.ParseClockTime(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, deal.ErrInvalidClockTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, ct.String())
		})
	}
}

func TestParseTimeWindow(t *testing.T) {
	t.Run("both nil means no window", func(t *testing.T) {
		w, err := deal.ParseTimeWindow(nil, nil)
		require.NoError(t, err)
		assert.Nil(t, w)
	})

	t.Run("half-open window is rejected", func(t *testing.T) {
		_, err := deal.ParseTimeWindow(strPtr("11:00"), nil)
		assert.ErrorIs(t, err, deal.ErrHalfOpenWindow)

		_, err = deal.ParseTimeWindow(nil, strPtr("22:00"))
		assert.ErrorIs(t, err, deal.ErrHalfOpenWindow)
	})

	t.Run("midnight-crossing window never matches past midnight", func(t *testing.T) {
		w := mustWindow(t, "22:00", "02:00")
		assert.False(t, w.Contains(time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC)))
		assert.False(t, w.Contains(time.Date(2026, 8, 25, 1, 0, 0, 0, time.UTC)))
	})
}

func TestNewDateRange(t *testing.T) {
	t.Run("from after until is rejected", func(t *testing.T) {
		from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		until := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		_, err := deal.NewDateRange(&from, &until)
		assert.ErrorIs(t, err, deal.ErrInvalidDateRange)
	})

	t.Run("same-day range is valid", func(t *testing.T) {
		day := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
		r, err := deal.NewDateRange(&day, &day)
		require.NoError(t, err)
		assert.True(t, r.Contains(time.Date(2026, 8, 25, 18, 30, 0, 0, time.UTC)))
	})

	t.Run("time of day does not affect the bounds", func(t *testing.T) {
		from := time.Date(2026, 8, 20, 23, 0, 0, 0, time.UTC)
		until := time.Date(2026, 8, 25, 1, 0, 0, 0, time.UTC)
		r, err := deal.NewDateRange(&from, &until)
		require.NoError(t, err)

		assert.True(t, r.Contains(time.Date(2026, 8, 20, 0, 30, 0, 0, time.UTC)))
		assert.True(t, r.Contains(time.Date(2026, 8, 25, 23, 30, 0, 0, time.UTC)))
	})
}

func TestNewDayOfWeek(t *testing.T) {
	for v := 0; v <= 6; v++ {
		_, err := deal.NewDayOfWeek(v)
		assert.NoError(t, err)
	}
	_, err := deal.NewDayOfWeek(-1)
	assert.ErrorIs(t, err, deal.ErrInvalidDayOfWeek)
	_, err = deal.NewDayOfWeek(7)
	assert.ErrorIs(t, err, deal.ErrInvalidDayOfWeek)
}
