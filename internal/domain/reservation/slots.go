package reservation

import "fmt"

// Reservation hours are a fixed business rule, not restaurant-configurable:
// seatings run 11:00 through 21:30, the last slot ending at the 22:00 close.
const (
	OpeningHour = 11
	ClosingHour = 22
	SlotMinutes = 30
	SlotsPerDay = (ClosingHour - OpeningHour) * 60 / SlotMinutes
)

// AllSlots enumerates every slot of a day as zero-padded "HH:MM",
// chronologically ascending.
func AllSlots() []string {
	slots := make([]string, 0, SlotsPerDay)
	for hour := OpeningHour; hour < ClosingHour; hour++ {
		for _, minute := range []int{0, 30} {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// AvailableSlots returns the slots of a day not present in booked, in
// chronological order. booked holds "HH:MM" times of reservations whose
// status still blocks the slot.
func AvailableSlots(booked map[string]struct{}) []string {
	available := make([]string, 0, SlotsPerDay)
	for _, slot := range AllSlots() {
		if _, taken := booked[slot]; !taken {
			available = append(available, slot)
		}
	}
	return available
}

// IsValidSlot reports whether t is one of the bookable "HH:MM" times.
func IsValidSlot(t string) bool {
	for _, slot := range AllSlots() {
		if slot == t {
			return true
		}
	}
	return false
}
