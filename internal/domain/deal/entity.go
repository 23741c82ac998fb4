package deal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Deal struct {
	id            uuid.UUID
	restaurantID  uuid.UUID
	title         string
	description   string
	discountLabel string
	dayOfWeek     *DayOfWeek
	window        *TimeWindow
	dateRange     DateRange
	isActive      bool
	featured      bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewDeal(
	restaurantID uuid.UUID,
	title, description, discountLabel string,
	dayOfWeek *DayOfWeek,
	window *TimeWindow,
	dateRange DateRange,
	featured bool,
) (*Deal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if strings.TrimSpace(discountLabel) == "" {
		return nil, ErrEmptyDiscount
	}

	return &Deal{
		id:            uuid.New(),
		restaurantID:  restaurantID,
		title:         title,
		description:   description,
		discountLabel: discountLabel,
		dayOfWeek:     dayOfWeek,
		window:        window,
		dateRange:     dateRange,
		isActive:      true,
		featured:      featured,
	}, nil
}

func ReconstructDeal(
	id, restaurantID uuid.UUID,
	title, description, discountLabel string,
	dayOfWeek *DayOfWeek,
	window *TimeWindow,
	dateRange DateRange,
	isActive, featured bool,
	createdAt, updatedAt time.Time,
) *Deal {
	return &Deal{
		id:            id,
		restaurantID:  restaurantID,
		title:         title,
		description:   description,
		discountLabel: discountLabel,
		dayOfWeek:     dayOfWeek,
		window:        window,
		dateRange:     dateRange,
		isActive:      isActive,
		featured:      featured,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// IsValidAt reports whether the deal applies at the given moment. The checks
// run cheapest-first: calendar range, then day of week, then clock window.
// An unset day of week means every day; an unset window means all day.
func (d *Deal) IsValidAt(now time.Time) bool {
	if !d.isActive {
		return false
	}
	if !d.dateRange.Contains(now) {
		return false
	}
	if d.dayOfWeek != nil && !d.dayOfWeek.Matches(now) {
		return false
	}
	if d.window != nil && !d.window.Contains(now) {
		return false
	}
	return true
}

func (d *Deal) Deactivate() {
	d.isActive = false
}

func (d *Deal) ID() uuid.UUID           { return d.id }
func (d *Deal) RestaurantID() uuid.UUID { return d.restaurantID }
func (d *Deal) Title() string           { return d.title }
func (d *Deal) Description() string     { return d.description }
func (d *Deal) DiscountLabel() string   { return d.discountLabel }
func (d *Deal) DayOfWeek() *DayOfWeek   { return d.dayOfWeek }
func (d *Deal) Window() *TimeWindow     { return d.window }
func (d *Deal) DateRange() DateRange    { return d.dateRange }
func (d *Deal) IsActive() bool          { return d.isActive }
func (d *Deal) Featured() bool          { return d.featured }
func (d *Deal) CreatedAt() time.Time    { return d.createdAt }
func (d *Deal) UpdatedAt() time.Time    { return d.updatedAt }
