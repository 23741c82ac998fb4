package queries

import (
	"context"
	"time"

	"goeat-api/internal/domain/deal"
	"goeat-api/internal/infra"
	"goeat-api/internal/pkg/clock"

	"github.com/google/uuid"
)

type DealView struct {
	ID             uuid.UUID  `json:"id"`
	RestaurantID   uuid.UUID  `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Discount       string     `json:"discount"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	StartTime      *string    `json:"start_time,omitempty"`
	EndTime        *string    `json:"end_time,omitempty"`
	DayOfWeek      *int       `json:"day_of_week,omitempty"`
	Featured       bool       `json:"featured"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type DealReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DealView, error)
	FindByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*DealView, error)
	// FindActiveOn narrows in SQL to active deals whose calendar range and
	// day of week can match the given moment; the clock window check is done
	// in the domain.
	FindActiveOn(ctx context.Context, date time.Time, dayOfWeek int) ([]*DealView, error)
}

type DealQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*DealView, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*DealView, error)
	Today(ctx context.Context) ([]*DealView, error)
}

type dealQueriesImpl struct {
	repo DealReadStore
	clk  clock.Clock
}

func NewDealQueries(repo DealReadStore, clk clock.Clock) DealQueries {
	return &dealQueriesImpl{repo: repo, clk: clk}
}

func (q *dealQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*DealView, error) {
	dv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	return dv, nil
}

func (q *dealQueriesImpl) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*DealView, error) {
	return q.repo.FindByRestaurant(ctx, restaurantID)
}

func (q *dealQueriesImpl) Today(ctx context.Context) ([]*DealView, error) {
	now := q.clk.Now().UTC()
	rows, err := q.repo.FindActiveOn(ctx, now, int(now.Weekday()))
	if err != nil {
		return nil, err
	}

	valid := make([]*DealView, 0, len(rows))
	for _, dv := range rows {
		d, err := dealFromView(dv)
		if err != nil {
			// A row that fails reconstruction carries malformed time fields;
			// skip it rather than failing the whole feed.
			continue
		}
		if d.IsValidAt(now) {
			valid = append(valid, dv)
		}
	}
	return valid, nil
}

func dealFromView(dv *DealView) (*deal.Deal, error) {
	window, err := deal.ParseTimeWindow(dv.StartTime, dv.EndTime)
	if err != nil {
		return nil, err
	}
	dateRange, err := deal.NewDateRange(dv.StartDate, dv.EndDate)
	if err != nil {
		return nil, err
	}
	var dow *deal.DayOfWeek
	if dv.DayOfWeek != nil {
		d, err := deal.NewDayOfWeek(*dv.DayOfWeek)
		if err != nil {
			return nil, err
		}
		dow = &d
	}
	return deal.ReconstructDeal(
		dv.ID, dv.RestaurantID,
		dv.Title, dv.Description, dv.Discount,
		dow, window, dateRange,
		dv.IsActive, dv.Featured,
		dv.CreatedAt, dv.UpdatedAt,
	), nil
}
