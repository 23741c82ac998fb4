package commands

import (
	"context"
	"time"

	"goeat-api/internal/domain/event"
	"goeat-api/internal/infra"
	"goeat-api/internal/pkg/errs"
	"goeat-api/internal/usecase/queries"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEventNotOwned = errs.New("event not owned by user")
	ErrEventFull     = errs.New("event is at capacity")
	ErrEventInactive = errs.New("event is not active")
	ErrNotAttending  = errs.New("not attending this event")
)

type CreateEventRequest struct {
	RestaurantID *uuid.UUID
	Title        string
	Description  string
	Date         time.Time
	Time         string
	EndTime      string
	Price        *float64
	Location     string
	Latitude     *float64
	Longitude    *float64
	Capacity     *int
	EventType    string
	Featured     bool
}

type UpdateEventRequest struct {
	Title       *string
	Description *string
	Location    *string
	EventType   *string
	Price       *float64
	Capacity    *int
	Date        *time.Time
	Time        *string
	EndTime     *string
}

type EventCommands interface {
	Create(ctx context.Context, req CreateEventRequest, actorID uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, eventID uuid.UUID, req UpdateEventRequest, actorID uuid.UUID, actorRole string) error
	Deactivate(ctx context.Context, eventID uuid.UUID, actorID uuid.UUID, actorRole string) error
	Attend(ctx context.Context, eventID, userID uuid.UUID, status event.AttendanceStatus) error
	Unattend(ctx context.Context, eventID, userID uuid.UUID) error
}

type eventCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewEventCommands(uow shared.UnitOfWork) EventCommands {
	return &eventCommandsImpl{uow: uow}
}

func (c *eventCommandsImpl) Create(ctx context.Context, req CreateEventRequest, actorID uuid.UUID) (uuid.UUID, error) {
	ev, err := event.NewEvent(
		actorID, req.RestaurantID,
		req.Title, req.Description,
		req.Date, req.Time, req.EndTime,
		req.Price, req.Location,
		req.Latitude, req.Longitude,
		req.Capacity, event.Type(req.EventType), req.Featured,
	)
	if err != nil {
		return uuid.Nil, err
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if req.RestaurantID != nil {
			if _, derr := tx.Reads().RestaurantByID(ctx, *req.RestaurantID); derr != nil {
				return derr
			}
		}
		id, derr := tx.Events().Create(ctx, tx.DB(), ev)
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

func (c *eventCommandsImpl) Update(ctx context.Context, eventID uuid.UUID, req UpdateEventRequest, actorID uuid.UUID, actorRole string) error {
	if req.EventType != nil {
		if _, err := event.NewType(*req.EventType); err != nil {
			return err
		}
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().EventByID(ctx, eventID)
		if derr != nil {
			return derr
		}
		if actorRole != queries.RoleAdmin && snap.OwnerID != actorID {
			return ErrEventNotOwned
		}

		return tx.Events().Update(ctx, tx.DB(), eventID, shared.EventUpdate{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			EventType:   req.EventType,
			Price:       req.Price,
			Capacity:    req.Capacity,
			Date:        req.Date,
			Time:        req.Time,
			EndTime:     req.EndTime,
		})
	})
}

func (c *eventCommandsImpl) Deactivate(ctx context.Context, eventID uuid.UUID, actorID uuid.UUID, actorRole string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().EventByID(ctx, eventID)
		if derr != nil {
			return derr
		}
		if actorRole != queries.RoleAdmin && snap.OwnerID != actorID {
			return ErrEventNotOwned
		}
		return tx.Events().Deactivate(ctx, tx.DB(), eventID)
	})
}

// Attend upserts the caller's RSVP. The event row is read FOR UPDATE, so
// the lock is held through the capacity check, the upsert and the recount;
// a racing "going" request blocks until this one commits and then sees the
// new count.
func (c *eventCommandsImpl) Attend(ctx context.Context, eventID, userID uuid.UUID, status event.AttendanceStatus) error {
	if !status.IsValid() {
		return event.ErrInvalidAttendance
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().EventForUpdate(ctx, eventID)
		if derr != nil {
			return derr
		}
		if !snap.IsActive {
			return ErrEventInactive
		}

		if status == event.AttendanceGoing && snap.Capacity != nil {
			going, derr := tx.Attendance().CountGoing(ctx, tx.DB(), eventID)
			if derr != nil {
				return derr
			}
			// The caller's own prior "going" row is being replaced, not added.
			prior, derr := tx.Reads().AttendanceFor(ctx, eventID, userID)
			if derr != nil && !infra.IsKind(derr, infra.KindNotFound) {
				return derr
			}
			if prior != nil && prior.Status == string(event.AttendanceGoing) {
				going--
			}
			if going >= *snap.Capacity {
				return ErrEventFull
			}
		}

		if derr := tx.Attendance().Upsert(ctx, tx.DB(), eventID, userID, status); derr != nil {
			return derr
		}
		return tx.Attendance().RecalcAttendeesCount(ctx, tx.DB(), eventID)
	})
}

func (c *eventCommandsImpl) Unattend(ctx context.Context, eventID, userID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().EventByID(ctx, eventID); derr != nil {
			return derr
		}
		if derr := tx.Attendance().Delete(ctx, tx.DB(), eventID, userID); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrNotAttending
			}
			return derr
		}
		return tx.Attendance().RecalcAttendeesCount(ctx, tx.DB(), eventID)
	})
}
