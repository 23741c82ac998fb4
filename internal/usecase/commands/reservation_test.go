//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"goeat-api/internal/domain/reservation"
	"goeat-api/internal/pkg/clock"
	"goeat-api/internal/usecase/commands"
	"goeat-api/internal/usecase/queries"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reservationNow = time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

type reservationFixture struct {
	uow          *stubUoW
	cmds         commands.ReservationCommands
	restaurantID uuid.UUID
	userID       uuid.UUID
	key          uuid.UUID
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()
	uow := newStubUoW()
	restaurantID := uuid.New()
	uow.tx.reads.restaurants[restaurantID] = &shared.RestaurantSnapshot{
		ID:       restaurantID,
		OwnerID:  uuid.New(),
		Name:     "Trattoria",
		IsActive: true,
	}

	return &reservationFixture{
		uow:          uow,
		cmds:         commands.NewReservationCommands(uow, clock.NewMockClock(reservationNow)),
		restaurantID: restaurantID,
		userID:       uuid.New(),
		key:          uuid.New(),
	}
}

// requestHash mirrors how the command fingerprints a create payload: the
// JSON encoding hashed with SHA-256.
func requestHash(t *testing.T, req commands.CreateReservationRequest) string {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (f *reservationFixture) request() commands.CreateReservationRequest {
	return commands.CreateReservationRequest{
		RestaurantID: f.restaurantID,
		Date:         reservationNow.AddDate(0, 0, 3),
		TimeSlot:     "19:00",
		PartySize:    2,
	}
}

func TestReservationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success records reservation, idempotency result and notification", func(t *testing.T) {
		f := newReservationFixture(t)

		result, err := f.cmds.Create(ctx, f.request(), f.userID, f.key)

		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		assert.NotEqual(t, uuid.Nil, result.ReservationID)

		require.Len(t, f.uow.tx.reservations.created, 1)
		assert.Equal(t, reservation.StatusPending, f.uow.tx.reservations.created[0].Status())

		assert.Equal(t, result.ReservationID, f.uow.tx.idempotency.completed[f.key])

		require.Len(t, f.uow.tx.notifications.jobs, 1)
		assert.Equal(t, "reservation_created", f.uow.tx.notifications.jobs[0].topic)
	})

	t.Run("booked slot is rejected", func(t *testing.T) {
		f := newReservationFixture(t)
		f.uow.tx.reservations.slotTaken = true

		_, err := f.cmds.Create(ctx, f.request(), f.userID, f.key)

		assert.ErrorIs(t, err, commands.ErrReservationConflict)
		assert.Empty(t, f.uow.tx.reservations.created)
	})

	t.Run("unique index race surfaces as the same conflict", func(t *testing.T) {
		f := newReservationFixture(t)
		f.uow.tx.reservations.createErr = duplicateKeyErr()

		_, err := f.cmds.Create(ctx, f.request(), f.userID, f.key)

		assert.ErrorIs(t, err, commands.ErrReservationConflict)
	})

	t.Run("inactive restaurant reads as not found", func(t *testing.T) {
		f := newReservationFixture(t)
		f.uow.tx.reads.restaurants[f.restaurantID].IsActive = false

		_, err := f.cmds.Create(ctx, f.request(), f.userID, f.key)

		assert.ErrorIs(t, err, queries.ErrRestaurantNotFound)
	})

	t.Run("domain validation runs before any write", func(t *testing.T) {
		f := newReservationFixture(t)
		req := f.request()
		req.TimeSlot = "19:15"

		_, err := f.cmds.Create(ctx, req, f.userID, f.key)

		assert.ErrorIs(t, err, reservation.ErrInvalidSlotTime)
		assert.Empty(t, f.uow.tx.reservations.created)
	})
}

func TestReservationCreateIdempotency(t *testing.T) {
	ctx := context.Background()

	// The stub does not wire TryInsert into the reads map, so replay scenarios
	// seed both sides explicitly.
	seedRecord := func(f *reservationFixture, rec *shared.IdempotencyRecord) {
		f.uow.tx.idempotency.tryInsertErr = duplicateKeyErr()
		f.uow.tx.reads.idempotency[f.key] = rec
	}

	t.Run("completed key replays the original result", func(t *testing.T) {
		f := newReservationFixture(t)
		req := f.request()

		// First request succeeds and completes the key.
		first, err := f.cmds.Create(ctx, req, f.userID, f.key)
		require.NoError(t, err)

		// A retry with the same key and payload sees the completed record.
		originalID := first.ReservationID
		seedRecord(f, &shared.IdempotencyRecord{
			Key:         f.key,
			UserID:      f.userID,
			RequestHash: requestHash(t, req),
			Status:      shared.IdempotencyStatusCompleted,
			ResultID:    &originalID,
		})

		second, err := f.cmds.Create(ctx, req, f.userID, f.key)

		require.NoError(t, err)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, originalID, second.ReservationID)
		// No second reservation row.
		assert.Len(t, f.uow.tx.reservations.created, 1)
	})

	t.Run("same key with different payload is rejected", func(t *testing.T) {
		f := newReservationFixture(t)
		req := f.request()
		seedRecord(f, &shared.IdempotencyRecord{
			Key:         f.key,
			UserID:      f.userID,
			RequestHash: "different-payload-hash",
			Status:      shared.IdempotencyStatusCompleted,
		})

		_, err := f.cmds.Create(ctx, req, f.userID, f.key)

		assert.ErrorIs(t, err, commands.ErrDuplicateReservation)
	})

	t.Run("in-flight key is rejected", func(t *testing.T) {
		f := newReservationFixture(t)
		req := f.request()
		seedRecord(f, &shared.IdempotencyRecord{
			Key:         f.key,
			UserID:      f.userID,
			RequestHash: requestHash(t, req),
			Status:      shared.IdempotencyStatusProcessing,
		})

		_, err := f.cmds.Create(ctx, req, f.userID, f.key)

		assert.ErrorIs(t, err, commands.ErrIdempotencyInProgress)
	})

	t.Run("completed key without a result is corrupt", func(t *testing.T) {
		f := newReservationFixture(t)
		req := f.request()
		seedRecord(f, &shared.IdempotencyRecord{
			Key:         f.key,
			UserID:      f.userID,
			RequestHash: requestHash(t, req),
			Status:      shared.IdempotencyStatusCompleted,
			ResultID:    nil,
		})

		_, err := f.cmds.Create(ctx, req, f.userID, f.key)

		assert.ErrorIs(t, err, commands.ErrIdempotencyCorrupt)
	})
}

func TestReservationUpdateStatus(t *testing.T) {
	ctx := context.Background()

	seedReservation := func(f *reservationFixture, status reservation.Status) uuid.UUID {
		id := uuid.New()
		f.uow.tx.reads.reservations[id] = &shared.ReservationSnapshot{
			ID:           id,
			UserID:       f.userID,
			RestaurantID: f.restaurantID,
			Date:         reservationNow.AddDate(0, 0, 3),
			TimeSlot:     "19:00",
			Status:       status,
		}
		return id
	}

	t.Run("owner confirms a pending reservation", func(t *testing.T) {
		f := newReservationFixture(t)
		ownerID := f.uow.tx.reads.restaurants[f.restaurantID].OwnerID
		id := seedReservation(f, reservation.StatusPending)

		err := f.cmds.UpdateStatus(ctx, id, reservation.StatusConfirmed, ownerID, queries.RoleOwner)

		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, f.uow.tx.reservations.statusUpdates[id])
	})

	t.Run("non-owner cannot manage the reservation", func(t *testing.T) {
		f := newReservationFixture(t)
		id := seedReservation(f, reservation.StatusPending)

		err := f.cmds.UpdateStatus(ctx, id, reservation.StatusConfirmed, uuid.New(), queries.RoleOwner)

		assert.ErrorIs(t, err, commands.ErrReservationNotOwned)
	})

	t.Run("admins can manage any reservation", func(t *testing.T) {
		f := newReservationFixture(t)
		id := seedReservation(f, reservation.StatusPending)

		err := f.cmds.UpdateStatus(ctx, id, reservation.StatusConfirmed, uuid.New(), queries.RoleAdmin)

		assert.NoError(t, err)
	})

	t.Run("illegal transition is rejected", func(t *testing.T) {
		f := newReservationFixture(t)
		ownerID := f.uow.tx.reads.restaurants[f.restaurantID].OwnerID
		id := seedReservation(f, reservation.StatusPending)

		err := f.cmds.UpdateStatus(ctx, id, reservation.StatusCompleted, ownerID, queries.RoleOwner)

		assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newReservationFixture(t)

		err := f.cmds.UpdateStatus(ctx, uuid.New(), reservation.StatusConfirmed, f.userID, queries.RoleAdmin)

		assert.Error(t, err)
	})
}

func TestReservationCancel(t *testing.T) {
	ctx := context.Background()

	seedReservation := func(f *reservationFixture, status reservation.Status) uuid.UUID {
		id := uuid.New()
		f.uow.tx.reads.reservations[id] = &shared.ReservationSnapshot{
			ID:           id,
			UserID:       f.userID,
			RestaurantID: f.restaurantID,
			Status:       status,
		}
		return id
	}

	t.Run("guest cancels own reservation and a notification is queued", func(t *testing.T) {
		f := newReservationFixture(t)
		id := seedReservation(f, reservation.StatusConfirmed)

		err := f.cmds.Cancel(ctx, id, f.userID, queries.RoleCustomer)

		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelled, f.uow.tx.reservations.statusUpdates[id])
		require.Len(t, f.uow.tx.notifications.jobs, 1)
		assert.Equal(t, "reservation_cancelled", f.uow.tx.notifications.jobs[0].topic)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newReservationFixture(t)
		id := seedReservation(f, reservation.StatusPending)

		err := f.cmds.Cancel(ctx, id, uuid.New(), queries.RoleCustomer)

		assert.ErrorIs(t, err, commands.ErrReservationNotOwned)
	})

	t.Run("completed reservation cannot be cancelled", func(t *testing.T) {
		f := newReservationFixture(t)
		id := seedReservation(f, reservation.StatusCompleted)

		err := f.cmds.Cancel(ctx, id, f.userID, queries.RoleCustomer)

		assert.ErrorIs(t, err, reservation.ErrNotCancellable)
	})
}
