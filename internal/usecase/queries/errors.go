package queries

import "goeat-api/internal/pkg/errs"

var (
	ErrInvalidCursor = errs.New("invalid cursor")

	ErrUserNotFound = errs.New("user not found")
	ErrUserInactive = errs.New("user inactive")

	ErrRestaurantNotFound  = errs.New("restaurant not found")
	ErrDealNotFound        = errs.New("deal not found")
	ErrEventNotFound       = errs.New("event not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationAccess   = errs.New("reservation access denied")
	ErrReviewNotFound      = errs.New("review not found")
	ErrVideoNotFound       = errs.New("video not found")

	ErrInvalidCoordinates = errs.New("invalid coordinates")
	ErrInvalidDate        = errs.New("invalid date")
)
