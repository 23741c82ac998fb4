package commands

import (
	"context"

	domreview "goeat-api/internal/domain/review"
	"goeat-api/internal/infra"
	"goeat-api/internal/pkg/clock"
	"goeat-api/internal/pkg/errs"
	"goeat-api/internal/usecase/queries"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReviewNotOwned  = errs.New("review not owned by user")
	ErrDuplicateReview = errs.New("user already reviewed this restaurant")
)

type CreateReviewRequest struct {
	RestaurantID uuid.UUID
	Rating       int
	Comment      string
}

type UpdateReviewRequest struct {
	Rating  int
	Comment string
}

type ReviewCommands interface {
	Create(ctx context.Context, req CreateReviewRequest, userID uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, reviewID uuid.UUID, req UpdateReviewRequest, actorID uuid.UUID) error
	Delete(ctx context.Context, reviewID uuid.UUID, actorID uuid.UUID, actorRole string) error
}

type reviewCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk}
}

func (c *reviewCommandsImpl) Create(ctx context.Context, req CreateReviewRequest, userID uuid.UUID) (uuid.UUID, error) {
	rev, err := domreview.NewReview(uuid.Nil, userID, req.RestaurantID, req.Rating, req.Comment, c.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().RestaurantByID(ctx, req.RestaurantID); derr != nil {
			return derr
		}

		id, derr := tx.Reviews().Create(ctx, tx.DB(), rev)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrDuplicateReview
			}
			return derr
		}
		createdID = id
		return tx.RatingStats().RecalcRestaurantRating(ctx, tx.DB(), req.RestaurantID)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (c *reviewCommandsImpl) Update(ctx context.Context, reviewID uuid.UUID, req UpdateReviewRequest, actorID uuid.UUID) error {
	rating, err := domreview.NewRating(req.Rating)
	if err != nil {
		return err
	}
	comment, err := domreview.NewComment(req.Comment)
	if err != nil {
		return err
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReviewByID(ctx, reviewID)
		if derr != nil {
			return derr
		}
		if snap.UserID != actorID {
			return ErrReviewNotOwned
		}

		if derr = tx.Reviews().Update(ctx, tx.DB(), reviewID, rating.Value(), comment.String(), c.clock.Now()); derr != nil {
			return derr
		}
		return tx.RatingStats().RecalcRestaurantRating(ctx, tx.DB(), snap.RestaurantID)
	})
}

func (c *reviewCommandsImpl) Delete(ctx context.Context, reviewID uuid.UUID, actorID uuid.UUID, actorRole string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReviewByID(ctx, reviewID)
		if derr != nil {
			return derr
		}
		if actorRole != queries.RoleAdmin && snap.UserID != actorID {
			return ErrReviewNotOwned
		}

		if derr = tx.Reviews().Delete(ctx, tx.DB(), reviewID); derr != nil {
			return derr
		}
		return tx.RatingStats().RecalcRestaurantRating(ctx, tx.DB(), snap.RestaurantID)
	})
}
