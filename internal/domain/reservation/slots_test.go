//go:build unit

package reservation_test

import (
	"testing"

	"goeat-api/internal/domain/reservation"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSlots(t *testing.T) {
	slots := reservation.AllSlots()

	require.Len(t, slots, reservation.SlotsPerDay)
	assert.Equal(t, 22, len(slots))
	assert.Equal(t, "11:00", slots[0])
	assert.Equal(t, "11:30", slots[1])
	assert.Equal(t, "21:30", slots[len(slots)-1])

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}

func TestAvailableSlots(t *testing.T) {
	t.Run("no bookings leaves every slot open", func(t *testing.T) {
		got := reservation.AvailableSlots(nil)
		if diff := cmp.Diff(reservation.AllSlots(), got); diff != "" {
			t.Errorf("available slots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("booked slots are removed in order", func(t *testing.T) {
		booked := map[string]struct{}{
			"11:00": {},
			"19:30": {},
			"21:30": {},
		}

		got := reservation.AvailableSlots(booked)

		require.Len(t, got, reservation.SlotsPerDay-3)
		assert.Equal(t, "11:30", got[0])
		assert.NotContains(t, got, "19:30")
		assert.NotContains(t, got, "21:30")
	})

	t.Run("fully booked day has no availability", func(t *testing.T) {
		booked := make(map[string]struct{})
		for _, s := range reservation.AllSlots() {
			booked[s] = struct{}{}
		}

		assert.Empty(t, reservation.AvailableSlots(booked))
	})

	t.Run("bookings outside the grid are ignored", func(t *testing.T) {
		booked := map[string]struct{}{
			"10:30": {},
			"22:00": {},
		}

		got := reservation.AvailableSlots(booked)
		if diff := cmp.Diff(reservation.AllSlots(), got); diff != "" {
			t.Errorf("available slots mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestIsValidSlot(t *testing.T) {
	testCases := []struct {
		slot string
		want bool
	}{
		{slot: "11:00", want: true},
		{slot: "21:30", want: true},
		{slot: "15:30", want: true},
		{slot: "10:30", want: false},
		{slot: "22:00", want: false},
		{slot: "11:15", want: false},
		{slot: "11:0", want: false},
		{slot: "", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.slot, func(t *testing.T) {
			assert.Equal(t, tc.want, reservation.IsValidSlot(tc.slot))
		})
	}
}
