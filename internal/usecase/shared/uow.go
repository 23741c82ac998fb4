package shared

import (
	"context"
	"time"

	"goeat-api/internal/domain/event"
	"goeat-api/internal/domain/reservation"
	"goeat-api/internal/domain/restaurant"
	"goeat-api/internal/domain/review"
	"goeat-api/internal/domain/user"
	"goeat-api/internal/domain/video"
	"goeat-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Users() UserRepository
	Restaurants() RestaurantRepository
	Deals() DealRepository
	Events() EventRepository
	Attendance() AttendanceRepository
	Reservations() ReservationRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Videos() VideoRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads supplies the minimal snapshots write paths need for
// validation, without depending on read-side view types.
type CommandReads interface {
	UserByEmail(ctx context.Context, email string) (*UserCredentials, error)
	RestaurantByID(ctx context.Context, id uuid.UUID) (*RestaurantSnapshot, error)
	DealByID(ctx context.Context, id uuid.UUID) (*DealSnapshot, error)
	EventByID(ctx context.Context, id uuid.UUID) (*EventSnapshot, error)
	// EventForUpdate locks the event row for the rest of the transaction,
	// serializing concurrent capacity checks against it.
	EventForUpdate(ctx context.Context, id uuid.UUID) (*EventSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	ReviewByID(ctx context.Context, id uuid.UUID) (*ReviewSnapshot, error)
	VideoByID(ctx context.Context, id uuid.UUID) (*VideoSnapshot, error)
	CommentByID(ctx context.Context, id uuid.UUID) (*CommentSnapshot, error)
	AttendanceFor(ctx context.Context, eventID, userID uuid.UUID) (*AttendanceSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, at time.Time) error
}

type RestaurantRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, r *restaurant.Restaurant) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, params RestaurantUpdate) error
}

type DealRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, d DealWrite) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, d DealWrite) error
	Deactivate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type EventRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, e *event.Event) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, params EventUpdate) error
	Deactivate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type AttendanceRepository interface {
	Upsert(ctx context.Context, dbtx db.DBTX, eventID, userID uuid.UUID, status event.AttendanceStatus) error
	Delete(ctx context.Context, dbtx db.DBTX, eventID, userID uuid.UUID) error
	CountGoing(ctx context.Context, dbtx db.DBTX, eventID uuid.UUID) (int, error)
	// RecalcAttendeesCount rewrites events.attendees_count from the going
	// rows; it must run in the same transaction as the mutation it follows.
	RecalcAttendeesCount(ctx context.Context, dbtx db.DBTX, eventID uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, r *reservation.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status reservation.Status) error
	// SlotTaken checks for a blocking reservation on the same
	// restaurant/date/slot; the partial unique index backs this up when two
	// transactions race past the check.
	SlotTaken(ctx context.Context, dbtx db.DBTX, restaurantID uuid.UUID, date time.Time, slot string) (bool, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, rev *review.Review) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, reviewID uuid.UUID, rating int, comment string, now time.Time) error
	Delete(ctx context.Context, dbtx db.DBTX, reviewID uuid.UUID) error
}

type RatingStatsRepository interface {
	// RecalcRestaurantRating rewrites restaurants.rating/total_reviews from
	// the review rows; same-transaction rule as attendance counts.
	RecalcRestaurantRating(ctx context.Context, dbtx db.DBTX, restaurantID uuid.UUID) error
}

type VideoRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, v *video.Video) (uuid.UUID, error)
	InsertLike(ctx context.Context, dbtx db.DBTX, videoID, userID uuid.UUID) error
	DeleteLike(ctx context.Context, dbtx db.DBTX, videoID, userID uuid.UUID) error
	LikeExists(ctx context.Context, dbtx db.DBTX, videoID, userID uuid.UUID) (bool, error)
	InsertComment(ctx context.Context, dbtx db.DBTX, videoID, userID uuid.UUID, comment string) (uuid.UUID, error)
	DeleteComment(ctx context.Context, dbtx db.DBTX, commentID uuid.UUID) error
	RecalcLikesCount(ctx context.Context, dbtx db.DBTX, videoID uuid.UUID) error
	RecalcCommentsCount(ctx context.Context, dbtx db.DBTX, videoID uuid.UUID) error
	IncrementShares(ctx context.Context, dbtx db.DBTX, videoID uuid.UUID) error
	IncrementViews(ctx context.Context, dbtx db.DBTX, videoIDs []uuid.UUID) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	UpdateStatusCompleted(ctx context.Context, dbtx db.DBTX, key, userID uuid.UUID, resultReservationID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
