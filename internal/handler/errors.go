package handler

import (
	"errors"
	"net/http"

	"trimplan/internal/domain"
	"trimplan/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var importErr *domain.ImportError

	switch {
	case errors.As(err, &importErr):
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, importErr.Error(), map[string]interface{}{
			"filename": importErr.Filename,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrConfirmationRequired):
		httputil.RespondErrorWithExtras(w, http.StatusPreconditionRequired, err.Error(), map[string]interface{}{
			"hint": "repeat the request with ?confirm=true",
		})
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
