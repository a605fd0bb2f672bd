package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"playbook/internal/application"
	"playbook/internal/models"
	"playbook/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	reqID := requestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestIDHeader)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body)
}

func writeImage(w http.ResponseWriter, data []byte, cacheControl string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// statusFor maps service errors to a status and a message safe to show.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, application.ErrInvalidCredentials.Error()
	case errors.Is(err, application.ErrInvalidSession):
		return http.StatusUnauthorized, "invalid session"
	case errors.Is(err, application.ErrUsernameTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, application.ErrInvalidSignup),
		errors.Is(err, application.ErrInvalidQuestion),
		errors.Is(err, application.ErrUnknownSide),
		errors.Is(err, models.ErrUnsupportedLanguage):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, application.ErrGameNotFound),
		errors.Is(err, application.ErrPlayNotFound),
		errors.Is(err, application.ErrBannerNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, application.ErrPublishingDisabled):
		return http.StatusNotImplemented, err.Error()
	case errors.Is(err, application.ErrSummaryUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
