package readstore

import (
	"context"
	"time"

	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"
	"goeat-api/internal/pkg/pgconv"
	"goeat-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// liked_by_viewer is resolved per request with a correlated EXISTS; uuid.Nil
// viewers never match.
const videoSelect = `
SELECT v.id, v.user_id, u.name, v.restaurant_id, r.name,
       v.title, v.description, v.video_url, v.thumbnail_url,
       v.likes_count, v.comments_count, v.shares_count, v.views_count,
       EXISTS (SELECT 1 FROM video_likes vl WHERE vl.video_id = v.id AND vl.user_id = $1),
       v.created_at
FROM videos v
JOIN users u ON u.id = v.user_id
LEFT JOIN restaurants r ON r.id = v.restaurant_id`

type VideoReadStore struct {
	db db.DBTX
}

func NewVideoReadStore(dbtx db.DBTX) *VideoReadStore {
	return &VideoReadStore{db: dbtx}
}

func (r *VideoReadStore) FindByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*queries.VideoView, error) {
	row := r.db.QueryRow(ctx, videoSelect+` WHERE v.id = $2 AND v.is_active`, viewerID, id)
	vv, err := scanVideo(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("video not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find video", err)
	}
	return vv, nil
}

func (r *VideoReadStore) FindFeedFirstPage(ctx context.Context, viewerID uuid.UUID, limit int32) ([]*queries.VideoView, error) {
	rows, err := r.db.Query(ctx,
		videoSelect+` WHERE v.is_active ORDER BY v.created_at DESC, v.id DESC LIMIT $2`,
		viewerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load video feed", err)
	}
	return collectVideos(rows)
}

func (r *VideoReadStore) FindFeedKeyset(ctx context.Context, viewerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.VideoView, error) {
	rows, err := r.db.Query(ctx,
		videoSelect+` WHERE v.is_active AND (v.created_at, v.id) < ($2, $3)
		 ORDER BY v.created_at DESC, v.id DESC LIMIT $4`,
		viewerID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load video feed after cursor", err)
	}
	return collectVideos(rows)
}

const videoCommentsSQL = `
SELECT c.id, c.video_id, c.user_id, u.name, c.comment, c.created_at
FROM video_comments c
JOIN users u ON u.id = c.user_id
WHERE c.video_id = $1
ORDER BY c.created_at DESC, c.id DESC`

func (r *VideoReadStore) FindComments(ctx context.Context, videoID uuid.UUID) ([]*queries.VideoCommentView, error) {
	rows, err := r.db.Query(ctx, videoCommentsSQL, videoID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list video comments", err)
	}
	defer rows.Close()

	var out []*queries.VideoCommentView
	for rows.Next() {
		var cv queries.VideoCommentView
		if err := rows.Scan(&cv.ID, &cv.VideoID, &cv.UserID, &cv.UserName, &cv.Comment, &cv.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan video comment", err)
		}
		out = append(out, &cv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read video comment rows", err)
	}
	return out, nil
}

func collectVideos(rows pgx.Rows) ([]*queries.VideoView, error) {
	defer rows.Close()
	var out []*queries.VideoView
	for rows.Next() {
		vv, err := scanVideo(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan video", err)
		}
		out = append(out, vv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read video rows", err)
	}
	return out, nil
}

func scanVideo(row rowScanner) (*queries.VideoView, error) {
	var vv queries.VideoView
	err := row.Scan(
		&vv.ID,
		&vv.UserID,
		&vv.UserName,
		&vv.RestaurantID,
		&vv.RestaurantName,
		&vv.Title,
		&vv.Description,
		&vv.VideoURL,
		&vv.ThumbnailURL,
		&vv.LikesCount,
		&vv.CommentsCount,
		&vv.SharesCount,
		&vv.ViewsCount,
		&vv.LikedByViewer,
		&vv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &vv, nil
}
