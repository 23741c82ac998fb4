package repository

import (
	"context"

	"goeat-api/internal/domain/video"
	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"

	"github.com/google/uuid"
)

type VideoRepository struct{}

func NewVideoRepository() *VideoRepository {
	return &VideoRepository{}
}

const createVideoSQL = `
INSERT INTO videos (user_id, restaurant_id, title, description, video_url, thumbnail_url, is_active)
VALUES ($1, $2, $3, $4, $5, $6, true)
RETURNING id`

func (r *VideoRepository) Create(ctx context.Context, dbtx db.DBTX, v *video.Video) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createVideoSQL,
		v.UserID(),
		v.RestaurantID(),
		v.Title(),
		v.Description(),
		v.VideoURL(),
		v.ThumbnailURL(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create video", err)
	}
	return id, nil
}

func (r *VideoRepository) InsertLike(ctx context.Context, dbtx db.DBTX, videoID, userID uuid.UUID) error {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO video_likes (video_id, user_id) VALUES ($1, $2)`, videoID, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to insert like", err)
	}
	return nil
}

func (r *VideoRepository) DeleteLike(ctx context.Context, dbtx db.DBTX, videoID, userID uuid.UUID) error {
	_, err := dbtx.Exec(ctx,
		`DELETE FROM video_likes WHERE video_id = $1 AND user_id = $2`, videoID, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete like", err)
	}
	return nil
}

func (r *VideoRepository) LikeExists(ctx context.Context, dbtx db.DBTX, videoID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := dbtx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM video_likes WHERE video_id = $1 AND user_id = $2)`,
		videoID, userID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check like", err)
	}
	return exists, nil
}

func (r *VideoRepository) InsertComment(ctx context.Context, dbtx db.DBTX, videoID, userID uuid.UUID, comment string) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx,
		`INSERT INTO video_comments (video_id, user_id, comment) VALUES ($1, $2, $3) RETURNING id`,
		videoID, userID, comment).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert comment", err)
	}
	return id, nil
}

func (r *VideoRepository) DeleteComment(ctx context.Context, dbtx db.DBTX, commentID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM video_comments WHERE id = $1`, commentID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("comment not found", nil, infra.KindNotFound)
	}
	return nil
}

// Counter rewrites run in the same transaction as the row mutation they
// follow, so the denormalized counts stay exact.
func (r *VideoRepository) RecalcLikesCount(ctx context.Context, dbtx db.DBTX, videoID uuid.UUID) error {
	_, err := dbtx.Exec(ctx, `
		UPDATE videos SET likes_count = (
			SELECT COUNT(*) FROM video_likes WHERE video_id = $1
		) WHERE id = $1`, videoID)
	if err != nil {
		return infra.WrapRepoErr("failed to recalc likes count", err)
	}
	return nil
}

func (r *VideoRepository) RecalcCommentsCount(ctx context.Context, dbtx db.DBTX, videoID uuid.UUID) error {
	_, err := dbtx.Exec(ctx, `
		UPDATE videos SET comments_count = (
			SELECT COUNT(*) FROM video_comments WHERE video_id = $1
		) WHERE id = $1`, videoID)
	if err != nil {
		return infra.WrapRepoErr("failed to recalc comments count", err)
	}
	return nil
}

func (r *VideoRepository) IncrementShares(ctx context.Context, dbtx db.DBTX, videoID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `UPDATE videos SET shares_count = shares_count + 1 WHERE id = $1`, videoID)
	if err != nil {
		return infra.WrapRepoErr("failed to increment shares", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("video not found", nil, infra.KindNotFound)
	}
	return nil
}

// IncrementViews is fired after a feed page is served; a lost update here is
// acceptable so it runs as a single statement outside Within.
func (r *VideoRepository) IncrementViews(ctx context.Context, dbtx db.DBTX, videoIDs []uuid.UUID) error {
	if len(videoIDs) == 0 {
		return nil
	}
	_, err := dbtx.Exec(ctx, `UPDATE videos SET views_count = views_count + 1 WHERE id = ANY($1)`, videoIDs)
	if err != nil {
		return infra.WrapRepoErr("failed to increment views", err)
	}
	return nil
}
