package commands

import (
	"context"
	"time"

	"goeat-api/internal/domain/deal"
	"goeat-api/internal/pkg/errs"
	"goeat-api/internal/usecase/queries"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDealNotOwned = errs.New("deal belongs to another owner's restaurant")

type DealRequest struct {
	Title       string
	Description string
	Discount    string
	StartDate   *time.Time
	EndDate     *time.Time
	StartTime   *string
	EndTime     *string
	DayOfWeek   *int
	Featured    bool
}

type DealCommands interface {
	Create(ctx context.Context, restaurantID uuid.UUID, req DealRequest, actorID uuid.UUID, actorRole string) (uuid.UUID, error)
	Update(ctx context.Context, dealID uuid.UUID, req DealRequest, actorID uuid.UUID, actorRole string) error
	Deactivate(ctx context.Context, dealID uuid.UUID, actorID uuid.UUID, actorRole string) error
}

type dealCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewDealCommands(uow shared.UnitOfWork) DealCommands {
	return &dealCommandsImpl{uow: uow}
}

// buildDeal runs the domain validation shared by create and update.
func buildDeal(restaurantID uuid.UUID, req DealRequest) (*deal.Deal, error) {
	window, err := deal.ParseTimeWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	dateRange, err := deal.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	var dow *deal.DayOfWeek
	if req.DayOfWeek != nil {
		d, err := deal.NewDayOfWeek(*req.DayOfWeek)
		if err != nil {
			return nil, err
		}
		dow = &d
	}
	return deal.NewDeal(restaurantID, req.Title, req.Description, req.Discount, dow, window, dateRange, req.Featured)
}

func dealWrite(d *deal.Deal, req DealRequest, isActive bool) shared.DealWrite {
	return shared.DealWrite{
		RestaurantID: d.RestaurantID(),
		Title:        d.Title(),
		Description:  d.Description(),
		Discount:     d.DiscountLabel(),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		DayOfWeek:    req.DayOfWeek,
		Featured:     req.Featured,
		IsActive:     isActive,
	}
}

func (c *dealCommandsImpl) Create(ctx context.Context, restaurantID uuid.UUID, req DealRequest, actorID uuid.UUID, actorRole string) (uuid.UUID, error) {
	d, err := buildDeal(restaurantID, req)
	if err != nil {
		return uuid.Nil, err
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().RestaurantByID(ctx, restaurantID)
		if derr != nil {
			return derr
		}
		if actorRole != queries.RoleAdmin && snap.OwnerID != actorID {
			return ErrRestaurantNotOwned
		}

		id, derr := tx.Deals().Create(ctx, tx.DB(), dealWrite(d, req, true))
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (c *dealCommandsImpl) Update(ctx context.Context, dealID uuid.UUID, req DealRequest, actorID uuid.UUID, actorRole string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().DealByID(ctx, dealID)
		if derr != nil {
			return derr
		}
		if derr := c.authorizeOwner(ctx, tx, snap.RestaurantID, actorID, actorRole); derr != nil {
			return derr
		}

		d, derr := buildDeal(snap.RestaurantID, req)
		if derr != nil {
			return derr
		}
		return tx.Deals().Update(ctx, tx.DB(), dealID, dealWrite(d, req, snap.IsActive))
	})
}

func (c *dealCommandsImpl) Deactivate(ctx context.Context, dealID uuid.UUID, actorID uuid.UUID, actorRole string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().DealByID(ctx, dealID)
		if derr != nil {
			return derr
		}
		if derr := c.authorizeOwner(ctx, tx, snap.RestaurantID, actorID, actorRole); derr != nil {
			return derr
		}
		return tx.Deals().Deactivate(ctx, tx.DB(), dealID)
	})
}

func (c *dealCommandsImpl) authorizeOwner(ctx context.Context, tx shared.Tx, restaurantID, actorID uuid.UUID, actorRole string) error {
	if actorRole == queries.RoleAdmin {
		return nil
	}
	rest, err := tx.Reads().RestaurantByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if rest.OwnerID != actorID {
		return ErrDealNotOwned
	}
	return nil
}
