package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"docvault/internal/domain"
	"docvault/internal/httputil"
)

// handleError maps domain errors to RFC 7807 responses carrying a stable
// machine-readable code. Not-found and forbidden deliberately get generic
// messages: a scoped query already hides other tenants' resources, and the
// response must not undo that.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	detail := "internal server error"

	var httpErr domain.HTTPError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		detail = "resource not found"
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		detail = "forbidden"
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
		detail = "unauthorized"
	case errors.As(err, &httpErr):
		status = httpErr.StatusCode()
		detail = httpErr.Error()
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
		detail = err.Error()
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
		detail = err.Error()
	default:
		logger.Error("request failed", "error", err)
	}

	httputil.RespondErrorWithExtras(w, status, detail, map[string]interface{}{
		"code": domain.Code(err),
	})
}
