package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Blocks reports whether a reservation in this status occupies its slot.
// Cancelled and completed reservations free the slot for rebooking.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}
