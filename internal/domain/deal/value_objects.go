package deal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidClockTime = errors.New("clock time must be HH:MM or HH:MM:SS")
	ErrHalfOpenWindow   = errors.New("start time and end time must be set together")
	ErrInvalidDateRange = errors.New("valid_from must not be after valid_until")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDiscount    = errors.New("discount label cannot be empty")
	ErrTitleTooLong     = errors.New("title exceeds maximum length")
)

const MaxTitleLength = 200

// ClockTime is a time of day with minute precision, compared as hour*100+minute.
type ClockTime struct {
	hour   int
	minute int
}

// ParseClockTime accepts "HH:MM" and "HH:MM:SS"; seconds are discarded.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ClockTime{}, ErrInvalidClockTime
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, ErrInvalidClockTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, ErrInvalidClockTime
	}

	return ClockTime{hour: hour, minute: minute}, nil
}

func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{hour: t.Hour(), minute: t.Minute()}
}

func (c ClockTime) Ordinal() int {
	return c.hour*100 + c.minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// TimeWindow bounds a deal to a clock-of-day range, inclusive at both ends.
// Windows crossing midnight (start > end) are not supported: such a window
// never matches after the end time, matching the documented behavior of the
// validity check.
type TimeWindow struct {
	start ClockTime
	end   ClockTime
}

func NewTimeWindow(start, end ClockTime) TimeWindow {
	return TimeWindow{start: start, end: end}
}

func ParseTimeWindow(start, end *string) (*TimeWindow, error) {
	if (start == nil) != (end == nil) {
		return nil, ErrHalfOpenWindow
	}
	if start == nil {
		return nil, nil
	}

	s, err := ParseClockTime(*start)
	if err != nil {
		return nil, err
	}
	e, err := ParseClockTime(*end)
	if err != nil {
		return nil, err
	}

	w := NewTimeWindow(s, e)
	return &w, nil
}

func (w TimeWindow) Contains(t time.Time) bool {
	now := ClockTimeOf(t).Ordinal()
	return w.start.Ordinal() <= now && now <= w.end.Ordinal()
}

func (w TimeWindow) Start() ClockTime { return w.start }
func (w TimeWindow) End() ClockTime   { return w.end }

// DayOfWeek follows the Sunday-first convention: 0=Sunday .. 6=Saturday.
type DayOfWeek int

func NewDayOfWeek(v int) (DayOfWeek, error) {
	if v < 0 || v > 6 {
		return 0, ErrInvalidDayOfWeek
	}
	return DayOfWeek(v), nil
}

func (d DayOfWeek) Matches(t time.Time) bool {
	return int(t.Weekday()) == int(d)
}

// DateRange bounds a deal to calendar dates, inclusive at both ends. Either
// bound may be open.
type DateRange struct {
	from  *time.Time
	until *time.Time
}

func NewDateRange(from, until *time.Time) (DateRange, error) {
	if from != nil && until != nil && truncateDate(*from).After(truncateDate(*until)) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{from: from, until: until}, nil
}

func (r DateRange) Contains(t time.Time) bool {
	today := truncateDate(t)
	if r.from != nil && today.Before(truncateDate(*r.from)) {
		return false
	}
	if r.until != nil && today.After(truncateDate(*r.until)) {
		return false
	}
	return true
}

func (r DateRange) From() *time.Time  { return r.from }
func (r DateRange) Until() *time.Time { return r.until }

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
