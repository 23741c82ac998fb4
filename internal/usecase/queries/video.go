package queries

import (
	"context"
	"time"

	"goeat-api/internal/infra"

	"github.com/google/uuid"
)

type VideoView struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	UserName       string     `json:"user_name"`
	RestaurantID   *uuid.UUID `json:"restaurant_id,omitempty"`
	RestaurantName *string    `json:"restaurant_name,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	VideoURL       string     `json:"video_url"`
	ThumbnailURL   string     `json:"thumbnail_url,omitempty"`
	LikesCount     int        `json:"likes_count"`
	CommentsCount  int        `json:"comments_count"`
	SharesCount    int        `json:"shares_count"`
	ViewsCount     int        `json:"views_count"`
	LikedByViewer  bool       `json:"liked_by_viewer"`
	CreatedAt      time.Time  `json:"created_at"`
}

type VideoCommentView struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"video_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type VideoReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*VideoView, error)
	FindFeedFirstPage(ctx context.Context, viewerID uuid.UUID, limit int32) ([]*VideoView, error)
	FindFeedKeyset(ctx context.Context, viewerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*VideoView, error)
	FindComments(ctx context.Context, videoID uuid.UUID) ([]*VideoCommentView, error)
}

type VideoQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*VideoView, error)
	Feed(ctx context.Context, viewerID uuid.UUID, cursor *Cursor, limit int) ([]*VideoView, *Cursor, error)
	ListComments(ctx context.Context, videoID uuid.UUID) ([]*VideoCommentView, error)
}

type videoQueriesImpl struct {
	repo VideoReadStore
}

func NewVideoQueries(repo VideoReadStore) VideoQueries {
	return &videoQueriesImpl{repo: repo}
}

func (q *videoQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*VideoView, error) {
	v, err := q.repo.FindByID(ctx, id, viewerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *videoQueriesImpl) Feed(ctx context.Context, viewerID uuid.UUID, cursor *Cursor, limit int) ([]*VideoView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*VideoView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindFeedFirstPage(ctx, viewerID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindFeedKeyset(ctx, viewerID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *videoQueriesImpl) ListComments(ctx context.Context, videoID uuid.UUID) ([]*VideoCommentView, error) {
	if _, err := q.repo.FindByID(ctx, videoID, uuid.Nil); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return q.repo.FindComments(ctx, videoID)
}
