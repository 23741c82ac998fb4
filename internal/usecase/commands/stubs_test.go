//go:build unit

package commands_test

import (
	"context"
	"time"

	"goeat-api/internal/domain/event"
	"goeat-api/internal/domain/reservation"
	"goeat-api/internal/domain/restaurant"
	"goeat-api/internal/domain/review"
	"goeat-api/internal/domain/user"
	"goeat-api/internal/domain/video"
	"goeat-api/internal/infra"
	"goeat-api/internal/infra/db"
	"goeat-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// stubUoW runs transaction closures against in-memory stub repositories so
// command logic can be exercised without a database. It does not simulate
// rollback: a failed closure leaves recorded calls in place, which the tests
// account for.
type stubUoW struct {
	tx *stubTx
}

func newStubUoW() *stubUoW {
	return &stubUoW{tx: newStubTx()}
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *stubUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *stubUoW) CommandReads() shared.CommandReads {
	return u.tx.reads
}

type stubTx struct {
	reads         *stubReads
	users         *stubUserRepo
	restaurants   *stubRestaurantRepo
	deals         *stubDealRepo
	events        *stubEventRepo
	attendance    *stubAttendanceRepo
	reservations  *stubReservationRepo
	reviews       *stubReviewRepo
	ratingStats   *stubRatingStatsRepo
	videos        *stubVideoRepo
	idempotency   *stubIdempotencyRepo
	notifications *stubNotificationRepo
}

func newStubTx() *stubTx {
	return &stubTx{
		reads:         newStubReads(),
		users:         &stubUserRepo{},
		restaurants:   &stubRestaurantRepo{},
		deals:         &stubDealRepo{},
		events:        &stubEventRepo{},
		attendance:    &stubAttendanceRepo{},
		reservations:  &stubReservationRepo{},
		reviews:       &stubReviewRepo{},
		ratingStats:   &stubRatingStatsRepo{},
		videos:        &stubVideoRepo{},
		idempotency:   &stubIdempotencyRepo{},
		notifications: &stubNotificationRepo{},
	}
}

func (t *stubTx) Users() shared.UserRepository                 { return t.users }
func (t *stubTx) Restaurants() shared.RestaurantRepository     { return t.restaurants }
func (t *stubTx) Deals() shared.DealRepository                 { return t.deals }
func (t *stubTx) Events() shared.EventRepository               { return t.events }
func (t *stubTx) Attendance() shared.AttendanceRepository      { return t.attendance }
func (t *stubTx) Reservations() shared.ReservationRepository   { return t.reservations }
func (t *stubTx) Reviews() shared.ReviewRepository             { return t.reviews }
func (t *stubTx) RatingStats() shared.RatingStatsRepository    { return t.ratingStats }
func (t *stubTx) Videos() shared.VideoRepository               { return t.videos }
func (t *stubTx) Idempotency() shared.IdempotencyRepository    { return t.idempotency }
func (t *stubTx) Notifications() shared.NotificationRepository { return t.notifications }
func (t *stubTx) Reads() shared.CommandReads                   { return t.reads }
func (t *stubTx) DB() db.DBTX                                  { return nil }

func notFoundErr() error {
	return infra.WrapRepoErr("row not found", nil, infra.KindNotFound)
}

func duplicateKeyErr() error {
	return infra.WrapRepoErr("duplicate key", nil, infra.KindDuplicateKey)
}

type attendanceKey struct {
	eventID uuid.UUID
	userID  uuid.UUID
}

type stubReads struct {
	usersByEmail map[string]*shared.UserCredentials
	restaurants  map[uuid.UUID]*shared.RestaurantSnapshot
	deals        map[uuid.UUID]*shared.DealSnapshot
	events       map[uuid.UUID]*shared.EventSnapshot
	reservations map[uuid.UUID]*shared.ReservationSnapshot
	reviews      map[uuid.UUID]*shared.ReviewSnapshot
	videos       map[uuid.UUID]*shared.VideoSnapshot
	comments     map[uuid.UUID]*shared.CommentSnapshot
	attendance   map[attendanceKey]*shared.AttendanceSnapshot
	idempotency  map[uuid.UUID]*shared.IdempotencyRecord

	lockedEvents []uuid.UUID
}

func newStubReads() *stubReads {
	return &stubReads{
		usersByEmail: map[string]*shared.UserCredentials{},
		restaurants:  map[uuid.UUID]*shared.RestaurantSnapshot{},
		deals:        map[uuid.UUID]*shared.DealSnapshot{},
		events:       map[uuid.UUID]*shared.EventSnapshot{},
		reservations: map[uuid.UUID]*shared.ReservationSnapshot{},
		reviews:      map[uuid.UUID]*shared.ReviewSnapshot{},
		videos:       map[uuid.UUID]*shared.VideoSnapshot{},
		comments:     map[uuid.UUID]*shared.CommentSnapshot{},
		attendance:   map[attendanceKey]*shared.AttendanceSnapshot{},
		idempotency:  map[uuid.UUID]*shared.IdempotencyRecord{},
	}
}

func (r *stubReads) UserByEmail(_ context.Context, email string) (*shared.UserCredentials, error) {
	if u, ok := r.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) RestaurantByID(_ context.Context, id uuid.UUID) (*shared.RestaurantSnapshot, error) {
	if s, ok := r.restaurants[id]; ok {
		return s, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) DealByID(_ context.Context, id uuid.UUID) (*shared.DealSnapshot, error) {
	if s, ok := r.deals[id]; ok {
		return s, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) EventByID(_ context.Context, id uuid.UUID) (*shared.EventSnapshot, error) {
	if s, ok := r.events[id]; ok {
		return s, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) EventForUpdate(_ context.Context, id uuid.UUID) (*shared.EventSnapshot, error) {
	if s, ok := r.events[id]; ok {
		r.lockedEvents = append(r.lockedEvents, id)
		return s, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	if s, ok := r.reservations[id]; ok {
		return s, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) ReviewByID(_ context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	if s, ok := r.reviews[id]; ok {
		return s, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) VideoByID(_ context.Context, id uuid.UUID) (*shared.VideoSnapshot, error) {
	if s, ok := r.videos[id]; ok {
		return s, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) CommentByID(_ context.Context, id uuid.UUID) (*shared.CommentSnapshot, error) {
	if s, ok := r.comments[id]; ok {
		return s, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) AttendanceFor(_ context.Context, eventID, userID uuid.UUID) (*shared.AttendanceSnapshot, error) {
	if s, ok := r.attendance[attendanceKey{eventID, userID}]; ok {
		return s, nil
	}
	return nil, notFoundErr()
}

func (r *stubReads) IdempotencyByKey(_ context.Context, key, _ uuid.UUID) (*shared.IdempotencyRecord, error) {
	if rec, ok := r.idempotency[key]; ok {
		return rec, nil
	}
	return nil, notFoundErr()
}

type stubUserRepo struct {
	created       []*user.User
	createErr     error
	lastLoginUser uuid.UUID
}

func (s *stubUserRepo) Create(_ context.Context, _ db.DBTX, u *user.User) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	s.created = append(s.created, u)
	return u.ID(), nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, userID uuid.UUID, _ time.Time) error {
	s.lastLoginUser = userID
	return nil
}

type stubRestaurantRepo struct {
	created []*restaurant.Restaurant
	updates map[uuid.UUID]shared.RestaurantUpdate
}

func (s *stubRestaurantRepo) Create(_ context.Context, _ db.DBTX, r *restaurant.Restaurant) (uuid.UUID, error) {
	s.created = append(s.created, r)
	return r.ID(), nil
}

func (s *stubRestaurantRepo) Update(_ context.Context, _ db.DBTX, id uuid.UUID, params shared.RestaurantUpdate) error {
	if s.updates == nil {
		s.updates = map[uuid.UUID]shared.RestaurantUpdate{}
	}
	s.updates[id] = params
	return nil
}

type stubDealRepo struct {
	created     []shared.DealWrite
	updated     map[uuid.UUID]shared.DealWrite
	deactivated []uuid.UUID
}

func (s *stubDealRepo) Create(_ context.Context, _ db.DBTX, d shared.DealWrite) (uuid.UUID, error) {
	s.created = append(s.created, d)
	return uuid.New(), nil
}

func (s *stubDealRepo) Update(_ context.Context, _ db.DBTX, id uuid.UUID, d shared.DealWrite) error {
	if s.updated == nil {
		s.updated = map[uuid.UUID]shared.DealWrite{}
	}
	s.updated[id] = d
	return nil
}

func (s *stubDealRepo) Deactivate(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	s.deactivated = append(s.deactivated, id)
	return nil
}

type stubEventRepo struct {
	created     []*event.Event
	updated     map[uuid.UUID]shared.EventUpdate
	deactivated []uuid.UUID
}

func (s *stubEventRepo) Create(_ context.Context, _ db.DBTX, e *event.Event) (uuid.UUID, error) {
	s.created = append(s.created, e)
	return e.ID(), nil
}

func (s *stubEventRepo) Update(_ context.Context, _ db.DBTX, id uuid.UUID, params shared.EventUpdate) error {
	if s.updated == nil {
		s.updated = map[uuid.UUID]shared.EventUpdate{}
	}
	s.updated[id] = params
	return nil
}

func (s *stubEventRepo) Deactivate(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	s.deactivated = append(s.deactivated, id)
	return nil
}

type upsertCall struct {
	eventID uuid.UUID
	userID  uuid.UUID
	status  event.AttendanceStatus
}

type stubAttendanceRepo struct {
	goingCount int
	upserts    []upsertCall
	deleteErr  error
	deleted    []attendanceKey
	recalced   []uuid.UUID
}

func (s *stubAttendanceRepo) Upsert(_ context.Context, _ db.DBTX, eventID, userID uuid.UUID, status event.AttendanceStatus) error {
	s.upserts = append(s.upserts, upsertCall{eventID, userID, status})
	return nil
}

func (s *stubAttendanceRepo) Delete(_ context.Context, _ db.DBTX, eventID, userID uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, attendanceKey{eventID, userID})
	return nil
}

func (s *stubAttendanceRepo) CountGoing(_ context.Context, _ db.DBTX, _ uuid.UUID) (int, error) {
	return s.goingCount, nil
}

func (s *stubAttendanceRepo) RecalcAttendeesCount(_ context.Context, _ db.DBTX, eventID uuid.UUID) error {
	s.recalced = append(s.recalced, eventID)
	return nil
}

type stubReservationRepo struct {
	slotTaken     bool
	createErr     error
	created       []*reservation.Reservation
	statusUpdates map[uuid.UUID]reservation.Status
}

func (s *stubReservationRepo) Create(_ context.Context, _ db.DBTX, r *reservation.Reservation) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	s.created = append(s.created, r)
	return r.ID(), nil
}

func (s *stubReservationRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status reservation.Status) error {
	if s.statusUpdates == nil {
		s.statusUpdates = map[uuid.UUID]reservation.Status{}
	}
	s.statusUpdates[id] = status
	return nil
}

func (s *stubReservationRepo) SlotTaken(_ context.Context, _ db.DBTX, _ uuid.UUID, _ time.Time, _ string) (bool, error) {
	return s.slotTaken, nil
}

type stubReviewRepo struct {
	createErr error
	created   []*review.Review
	updated   []uuid.UUID
	deleted   []uuid.UUID
}

func (s *stubReviewRepo) Create(_ context.Context, _ db.DBTX, rev *review.Review) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	s.created = append(s.created, rev)
	return rev.ID(), nil
}

func (s *stubReviewRepo) Update(_ context.Context, _ db.DBTX, reviewID uuid.UUID, _ int, _ string, _ time.Time) error {
	s.updated = append(s.updated, reviewID)
	return nil
}

func (s *stubReviewRepo) Delete(_ context.Context, _ db.DBTX, reviewID uuid.UUID) error {
	s.deleted = append(s.deleted, reviewID)
	return nil
}

type stubRatingStatsRepo struct {
	recalced []uuid.UUID
}

func (s *stubRatingStatsRepo) RecalcRestaurantRating(_ context.Context, _ db.DBTX, restaurantID uuid.UUID) error {
	s.recalced = append(s.recalced, restaurantID)
	return nil
}

type stubVideoRepo struct {
	created        []*video.Video
	likeExists     bool
	likesInserted  []attendanceKey
	likesDeleted   []attendanceKey
	comments       map[uuid.UUID]string
	deletedComment []uuid.UUID
	likeRecalcs    []uuid.UUID
	commentRecalcs []uuid.UUID
	shares         []uuid.UUID
	viewBatches    [][]uuid.UUID
}

func (s *stubVideoRepo) Create(_ context.Context, _ db.DBTX, v *video.Video) (uuid.UUID, error) {
	s.created = append(s.created, v)
	return v.ID(), nil
}

func (s *stubVideoRepo) InsertLike(_ context.Context, _ db.DBTX, videoID, userID uuid.UUID) error {
	if s.likeExists {
		return duplicateKeyErr()
	}
	s.likesInserted = append(s.likesInserted, attendanceKey{videoID, userID})
	return nil
}

func (s *stubVideoRepo) DeleteLike(_ context.Context, _ db.DBTX, videoID, userID uuid.UUID) error {
	s.likesDeleted = append(s.likesDeleted, attendanceKey{videoID, userID})
	return nil
}

func (s *stubVideoRepo) LikeExists(_ context.Context, _ db.DBTX, _, _ uuid.UUID) (bool, error) {
	return s.likeExists, nil
}

func (s *stubVideoRepo) InsertComment(_ context.Context, _ db.DBTX, _, _ uuid.UUID, comment string) (uuid.UUID, error) {
	if s.comments == nil {
		s.comments = map[uuid.UUID]string{}
	}
	id := uuid.New()
	s.comments[id] = comment
	return id, nil
}

func (s *stubVideoRepo) DeleteComment(_ context.Context, _ db.DBTX, commentID uuid.UUID) error {
	s.deletedComment = append(s.deletedComment, commentID)
	return nil
}

func (s *stubVideoRepo) RecalcLikesCount(_ context.Context, _ db.DBTX, videoID uuid.UUID) error {
	s.likeRecalcs = append(s.likeRecalcs, videoID)
	return nil
}

func (s *stubVideoRepo) RecalcCommentsCount(_ context.Context, _ db.DBTX, videoID uuid.UUID) error {
	s.commentRecalcs = append(s.commentRecalcs, videoID)
	return nil
}

func (s *stubVideoRepo) IncrementShares(_ context.Context, _ db.DBTX, videoID uuid.UUID) error {
	s.shares = append(s.shares, videoID)
	return nil
}

func (s *stubVideoRepo) IncrementViews(_ context.Context, _ db.DBTX, videoIDs []uuid.UUID) error {
	s.viewBatches = append(s.viewBatches, videoIDs)
	return nil
}

type stubIdempotencyRepo struct {
	tryInsertErr error
	inserted     []uuid.UUID
	completed    map[uuid.UUID]uuid.UUID
}

func (s *stubIdempotencyRepo) TryInsert(_ context.Context, _ db.DBTX, key, _ uuid.UUID, _, _ string, _ time.Time) error {
	if s.tryInsertErr != nil {
		return s.tryInsertErr
	}
	s.inserted = append(s.inserted, key)
	return nil
}

func (s *stubIdempotencyRepo) UpdateStatusCompleted(_ context.Context, _ db.DBTX, key, _ uuid.UUID, resultReservationID uuid.UUID) error {
	if s.completed == nil {
		s.completed = map[uuid.UUID]uuid.UUID{}
	}
	s.completed[key] = resultReservationID
	return nil
}

type notificationJob struct {
	kind  string
	topic string
}

type stubNotificationRepo struct {
	jobs []notificationJob
}

func (s *stubNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, _ []byte, _ time.Time) error {
	s.jobs = append(s.jobs, notificationJob{kind: kind, topic: topic})
	return nil
}
