package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"goeat-api/internal/domain/reservation"
	"goeat-api/internal/infra"
	"goeat-api/internal/pkg/clock"
	"goeat-api/internal/pkg/errs"
	"goeat-api/internal/usecase/queries"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationConflict   = errs.New("time slot already booked")
	ErrReservationNotOwned   = errs.New("reservation not owned by user")
	ErrDuplicateReservation  = errs.New("duplicate request with different payload")
	ErrIdempotencyInProgress = errs.New("request with this idempotency key is in progress")
	ErrIdempotencyCorrupt    = errs.New("completed request missing result reservation ID")
)

const idempotencyTTL = 24 * time.Hour

type CreateReservationRequest struct {
	RestaurantID    uuid.UUID `json:"restaurant_id"`
	Date            time.Time `json:"date"`
	TimeSlot        string    `json:"time_slot"`
	PartySize       int       `json:"party_size"`
	SpecialRequests string    `json:"special_requests"`
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
	IsReplayed    bool
}

type ReservationCommands interface {
	Create(ctx context.Context, req CreateReservationRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateReservationResult, error)
	UpdateStatus(ctx context.Context, reservationID uuid.UUID, next reservation.Status, actorID uuid.UUID, actorRole string) error
	Cancel(ctx context.Context, reservationID uuid.UUID, actorID uuid.UUID, actorRole string) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{uow: uow, clock: clk}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, req CreateReservationRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateReservationResult, error) {
	requestHash := hashRequest(req)

	replayed, err := c.claimIdempotencyKey(ctx, idempotencyKey, userID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateReservationResult{ReservationID: *replayed, IsReplayed: true}, nil
	}

	res, err := reservation.NewReservation(
		userID, req.RestaurantID,
		req.Date, req.TimeSlot,
		req.PartySize, req.SpecialRequests,
		c.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rest, derr := tx.Reads().RestaurantByID(ctx, req.RestaurantID)
		if derr != nil {
			return derr
		}
		if !rest.IsActive {
			return queries.ErrRestaurantNotFound
		}

		taken, derr := tx.Reservations().SlotTaken(ctx, tx.DB(), req.RestaurantID, res.Date(), res.Slot())
		if derr != nil {
			return derr
		}
		if taken {
			return ErrReservationConflict
		}

		id, derr := tx.Reservations().Create(ctx, tx.DB(), res)
		if derr != nil {
			// The partial unique index catches the race the check above missed.
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrReservationConflict
			}
			return derr
		}
		createdID = id

		if derr = c.queueNotification(ctx, tx, "reservation_created", id); derr != nil {
			return derr
		}
		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, id)
	})
	if err != nil {
		return nil, err
	}

	return &CreateReservationResult{ReservationID: createdID}, nil
}

// claimIdempotencyKey inserts the key, or resolves what the earlier request
// with the same key produced. A non-nil UUID means replay.
func (c *reservationCommandsImpl) claimIdempotencyKey(ctx context.Context, key, userID uuid.UUID, requestHash string) (*uuid.UUID, error) {
	expiresAt := c.clock.Now().Add(idempotencyTTL)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, "POST /reservations", requestHash, expiresAt)
	})
	if err == nil {
		return nil, nil
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, err
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if existing.RequestHash != requestHash {
		return nil, ErrDuplicateReservation
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultID == nil {
			return nil, ErrIdempotencyCorrupt
		}
		return existing.ResultID, nil
	case shared.IdempotencyStatusProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *reservationCommandsImpl) UpdateStatus(ctx context.Context, reservationID uuid.UUID, next reservation.Status, actorID uuid.UUID, actorRole string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReservationByID(ctx, reservationID)
		if derr != nil {
			return derr
		}
		if derr = c.authorizeManage(ctx, tx, snap, actorID, actorRole); derr != nil {
			return derr
		}

		res := reservation.ReconstructReservation(
			snap.ID, snap.UserID, snap.RestaurantID,
			snap.Date, snap.TimeSlot, 0, "", snap.Status,
			time.Time{}, time.Time{},
		)
		if derr = res.Transition(next); derr != nil {
			return derr
		}
		return tx.Reservations().UpdateStatus(ctx, tx.DB(), reservationID, next)
	})
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, reservationID uuid.UUID, actorID uuid.UUID, actorRole string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReservationByID(ctx, reservationID)
		if derr != nil {
			return derr
		}
		if actorRole != queries.RoleAdmin && snap.UserID != actorID {
			if derr = c.authorizeManage(ctx, tx, snap, actorID, actorRole); derr != nil {
				return ErrReservationNotOwned
			}
		}

		res := reservation.ReconstructReservation(
			snap.ID, snap.UserID, snap.RestaurantID,
			snap.Date, snap.TimeSlot, 0, "", snap.Status,
			time.Time{}, time.Time{},
		)
		if derr = res.Cancel(); derr != nil {
			return derr
		}
		if derr = tx.Reservations().UpdateStatus(ctx, tx.DB(), reservationID, reservation.StatusCancelled); derr != nil {
			return derr
		}
		return c.queueNotification(ctx, tx, "reservation_cancelled", reservationID)
	})
}

// Status changes other than guest cancellation are for the restaurant side.
func (c *reservationCommandsImpl) authorizeManage(ctx context.Context, tx shared.Tx, snap *shared.ReservationSnapshot, actorID uuid.UUID, actorRole string) error {
	if actorRole == queries.RoleAdmin {
		return nil
	}
	rest, err := tx.Reads().RestaurantByID(ctx, snap.RestaurantID)
	if err != nil {
		return err
	}
	if rest.OwnerID != actorID {
		return ErrReservationNotOwned
	}
	return nil
}

func (c *reservationCommandsImpl) queueNotification(ctx context.Context, tx shared.Tx, topic string, reservationID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": reservationID,
		"type":           topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, c.clock.Now())
}

func hashRequest(req CreateReservationRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
