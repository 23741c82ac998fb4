package api

import (
	"log/slog"
	"net/http"

	"goeat-api/internal/handler/httperr"
	"goeat-api/internal/infra"
	"goeat-api/internal/usecase/commands"
	"goeat-api/internal/usecase/queries"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

// respondError translates usecase and domain errors into HTTP responses.
// A booked slot is a validation failure on the requested slot, not a
// resource conflict, so it maps to 400.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrInvalidCursor),
		errors.Is(err, queries.ErrInvalidCoordinates),
		errors.Is(err, queries.ErrInvalidDate),
		errors.Is(err, commands.ErrPartialCoordinates),
		errors.Is(err, commands.ErrReservationConflict),
		errors.Is(err, commands.ErrEventInactive):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)

	case errors.Is(err, commands.ErrInvalidCredentials),
		errors.Is(err, commands.ErrAuthenticationFailed):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)

	case errors.Is(err, commands.ErrUserInactive),
		errors.Is(err, queries.ErrUserInactive):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)

	case errors.Is(err, commands.ErrNotOwnerRole),
		errors.Is(err, commands.ErrRestaurantNotOwned),
		errors.Is(err, commands.ErrDealNotOwned),
		errors.Is(err, commands.ErrEventNotOwned),
		errors.Is(err, commands.ErrReservationNotOwned),
		errors.Is(err, commands.ErrReviewNotOwned),
		errors.Is(err, commands.ErrCommentNotOwned),
		errors.Is(err, queries.ErrReservationAccess):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)

	case errors.Is(err, queries.ErrUserNotFound),
		errors.Is(err, queries.ErrRestaurantNotFound),
		errors.Is(err, queries.ErrDealNotFound),
		errors.Is(err, queries.ErrEventNotFound),
		errors.Is(err, queries.ErrReservationNotFound),
		errors.Is(err, queries.ErrReviewNotFound),
		errors.Is(err, queries.ErrVideoNotFound),
		errors.Is(err, commands.ErrNotAttending):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)

	case errors.Is(err, commands.ErrEmailTaken),
		errors.Is(err, commands.ErrDuplicateReview),
		errors.Is(err, commands.ErrDuplicateReservation),
		errors.Is(err, commands.ErrIdempotencyInProgress),
		errors.Is(err, commands.ErrEventFull):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)

	case infra.IsKind(err, infra.KindNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)

	case infra.IsKind(err, infra.KindForeignKeyViolated):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Referenced resource does not exist", nil)

	case infra.IsKind(err, infra.KindDBFailure),
		errors.Is(err, commands.ErrTokenGeneration),
		errors.Is(err, commands.ErrIdempotencyCorrupt):
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)

	default:
		// Remaining errors come from domain constructors rejecting input.
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	}
}
