package commands

import (
	"context"

	"goeat-api/internal/domain/video"
	"goeat-api/internal/infra"
	"goeat-api/internal/pkg/errs"
	"goeat-api/internal/usecase/queries"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrCommentNotOwned = errs.New("comment not owned by user")

type CreateVideoRequest struct {
	RestaurantID *uuid.UUID
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
}

type LikeResult struct {
	Liked bool
}

type VideoCommands interface {
	Create(ctx context.Context, req CreateVideoRequest, userID uuid.UUID) (uuid.UUID, error)
	ToggleLike(ctx context.Context, videoID, userID uuid.UUID) (*LikeResult, error)
	AddComment(ctx context.Context, videoID, userID uuid.UUID, comment string) (uuid.UUID, error)
	DeleteComment(ctx context.Context, commentID, actorID uuid.UUID, actorRole string) error
	Share(ctx context.Context, videoID uuid.UUID) error
	RegisterViews(ctx context.Context, videoIDs []uuid.UUID) error
}

type videoCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewVideoCommands(uow shared.UnitOfWork) VideoCommands {
	return &videoCommandsImpl{uow: uow}
}

func (c *videoCommandsImpl) Create(ctx context.Context, req CreateVideoRequest, userID uuid.UUID) (uuid.UUID, error) {
	v, err := video.NewVideo(userID, req.RestaurantID, req.Title, req.Description, req.VideoURL, req.ThumbnailURL)
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
		id, derr := tx.Videos().Create(ctx, tx.DB(), v)
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

// ToggleLike flips the caller's like and rewrites the counter in the same
// transaction.
func (c *videoCommandsImpl) ToggleLike(ctx context.Context, videoID, userID uuid.UUID) (*LikeResult, error) {
	var liked bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().VideoByID(ctx, videoID); derr != nil {
			return derr
		}

		exists, derr := tx.Videos().LikeExists(ctx, tx.DB(), videoID, userID)
		if derr != nil {
			return derr
		}
		if exists {
			if derr = tx.Videos().DeleteLike(ctx, tx.DB(), videoID, userID); derr != nil {
				return derr
			}
			liked = false
		} else {
			if derr = tx.Videos().InsertLike(ctx, tx.DB(), videoID, userID); derr != nil {
				// A concurrent like already inserted the row; treat as liked.
				if !infra.IsKind(derr, infra.KindDuplicateKey) {
					return derr
				}
			}
			liked = true
		}
		return tx.Videos().RecalcLikesCount(ctx, tx.DB(), videoID)
	})
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: liked}, nil
}

func (c *videoCommandsImpl) AddComment(ctx context.Context, videoID, userID uuid.UUID, comment string) (uuid.UUID, error) {
	text, err := video.NewVideoComment(comment)
	if err != nil {
		return uuid.Nil, err
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().VideoByID(ctx, videoID); derr != nil {
			return derr
		}
		id, derr := tx.Videos().InsertComment(ctx, tx.DB(), videoID, userID, text)
		if derr != nil {
			return derr
		}
		createdID = id
		return tx.Videos().RecalcCommentsCount(ctx, tx.DB(), videoID)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (c *videoCommandsImpl) DeleteComment(ctx context.Context, commentID, actorID uuid.UUID, actorRole string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().CommentByID(ctx, commentID)
		if derr != nil {
			return derr
		}
		if actorRole != queries.RoleAdmin && snap.UserID != actorID {
			return ErrCommentNotOwned
		}

		if derr = tx.Videos().DeleteComment(ctx, tx.DB(), commentID); derr != nil {
			return derr
		}
		return tx.Videos().RecalcCommentsCount(ctx, tx.DB(), snap.VideoID)
	})
}

func (c *videoCommandsImpl) Share(ctx context.Context, videoID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Videos().IncrementShares(ctx, tx.DB(), videoID)
	})
}

// RegisterViews bumps view counters after a feed page is served. It is fire
// and forget from the handler's perspective.
func (c *videoCommandsImpl) RegisterViews(ctx context.Context, videoIDs []uuid.UUID) error {
	if len(videoIDs) == 0 {
		return nil
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Videos().IncrementViews(ctx, tx.DB(), videoIDs)
	})
}
