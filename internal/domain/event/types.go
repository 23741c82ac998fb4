package event

type Type string

const (
	TypeRestaurantEvent Type = "restaurant_event"
	TypeFestival        Type = "festival"
	TypePopup           Type = "popup"
	TypeSpecial         Type = "special"
	TypeEntertainment   Type = "entertainment"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeRestaurantEvent, TypeFestival, TypePopup, TypeSpecial, TypeEntertainment:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// AttendanceStatus is the user's declared relationship to an event. Only
// "going" counts toward attendees_count.
type AttendanceStatus string

const (
	AttendanceGoing      AttendanceStatus = "going"
	AttendanceInterested AttendanceStatus = "interested"
)

func (s AttendanceStatus) IsValid() bool {
	return s == AttendanceGoing || s == AttendanceInterested
}

func NewAttendanceStatus(s string) (AttendanceStatus, error) {
	st := AttendanceStatus(s)
	if !st.IsValid() {
		return "", ErrInvalidAttendance
	}
	return st, nil
}
