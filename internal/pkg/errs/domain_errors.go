package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Restaurant errors
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrRestaurantNotOwned = errors.New("restaurant not owned by user")

	// Deal errors
	ErrDealNotFound = errors.New("deal not found")

	// Event errors
	ErrEventNotFound    = errors.New("event not found")
	ErrEventFull        = errors.New("event is at capacity")
	ErrNotAttending     = errors.New("user is not attending this event")
	ErrEventNotOwned    = errors.New("event not owned by user")
	ErrInvalidEventType = errors.New("invalid event type")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationConflict = errors.New("time slot is already booked")
	ErrInvalidSlot         = errors.New("time is not a valid reservation slot")
	ErrPastDate            = errors.New("reservation date is in the past")

	// Review errors
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user already reviewed this restaurant")

	// Video errors
	ErrVideoNotFound   = errors.New("video not found")
	ErrCommentNotFound = errors.New("comment not found")

	// Idempotency errors
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
