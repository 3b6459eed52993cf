package api

import (
	"errors"
	"log/slog"
	"net/http"

	"testdrive-hub/internal/domain/calendar"
	"testdrive-hub/internal/domain/testdrive"
	resdto "testdrive-hub/internal/handler/dto/response"
	"testdrive-hub/internal/handler/httperr"
	"testdrive-hub/internal/pkg/errs"
	"testdrive-hub/internal/usecase/commands"
	"testdrive-hub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// abortWithUseCaseError maps usecase and domain errors to HTTP responses.
func abortWithUseCaseError(c *gin.Context, err error) {
	var validationErr *testdrive.ValidationError
	var transitionErr *testdrive.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed",
			gin.H{"errors": resdto.FromFieldErrors(validationErr.Fields)})
	case errors.As(err, &transitionErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid state transition", gin.H{
			"status": transitionErr.From.String(),
			"action": transitionErr.Action.String(),
			"reason": transitionErr.Reason,
		})
	case errs.Is(err, testdrive.ErrActorNotPermitted), errs.Is(err, queries.ErrAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
	case errs.Is(err, errs.ErrVehicleNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found", nil)
	case errs.Is(err, errs.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Test drive request not found", nil)
	case errs.Is(err, calendar.ErrIncompleteEvent):
		httperr.AbortWithError(c, http.StatusConflict, err, "Calendar export is only available for agreed appointments", nil)
	case errs.Is(err, commands.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request is currently being processed", nil)
	case errs.Is(err, commands.ErrIdempotencyKeyReused):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Idempotency key reused with a different request", nil)
	case errs.Is(err, commands.ErrUnknownField):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown form field", nil)
	case errs.Is(err, testdrive.ErrInvalidStatus), errs.Is(err, testdrive.ErrInvalidAction):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	default:
		slog.ErrorContext(c.Request.Context(), "Unhandled usecase error",
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
