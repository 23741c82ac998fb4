package video

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidVideoURL = errors.New("video URL is not a valid absolute URL")
	ErrEmptyComment    = errors.New("comment cannot be empty")
	ErrCommentTooLong  = errors.New("comment exceeds maximum length")
)

const MaxCommentLength = 500

type Video struct {
	id            uuid.UUID
	userID        uuid.UUID
	restaurantID  *uuid.UUID
	title         string
	description   string
	videoURL      string
	thumbnailURL  string
	likesCount    int
	commentsCount int
	sharesCount   int
	viewsCount    int
	isActive      bool
	createdAt     time.Time
}

func NewVideo(userID uuid.UUID, restaurantID *uuid.UUID, title, description, videoURL, thumbnailURL string) (*Video, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if u, err := url.Parse(videoURL); err != nil || !u.IsAbs() {
		return nil, ErrInvalidVideoURL
	}

	return &Video{
		id:           uuid.New(),
		userID:       userID,
		restaurantID: restaurantID,
		title:        title,
		description:  description,
		videoURL:     videoURL,
		thumbnailURL: thumbnailURL,
		isActive:     true,
	}, nil
}

func (v *Video) ID() uuid.UUID            { return v.id }
func (v *Video) UserID() uuid.UUID        { return v.userID }
func (v *Video) RestaurantID() *uuid.UUID { return v.restaurantID }
func (v *Video) Title() string            { return v.title }
func (v *Video) Description() string      { return v.description }
func (v *Video) VideoURL() string         { return v.videoURL }
func (v *Video) ThumbnailURL() string     { return v.thumbnailURL }
func (v *Video) LikesCount() int          { return v.likesCount }
func (v *Video) CommentsCount() int       { return v.commentsCount }
func (v *Video) SharesCount() int         { return v.sharesCount }
func (v *Video) ViewsCount() int          { return v.viewsCount }
func (v *Video) IsActive() bool           { return v.isActive }
func (v *Video) CreatedAt() time.Time     { return v.createdAt }

// NewVideoComment validates comment text for a video.
func NewVideoComment(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", ErrEmptyComment
	}
	if len(t) > MaxCommentLength {
		return "", ErrCommentTooLong
	}
	return t, nil
}
