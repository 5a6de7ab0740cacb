package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/log"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeValidationFailed   = "validation_failed"
	codeInvalidID          = "invalid_id"
	codeInvalidDate        = "invalid_date"
	codeInvalidRange       = "invalid_range"
	codeTitleRequired      = "title_required"
	codeDateRequired       = "date_required"
	codeInvalidTags        = "invalid_tags"
	codeTimerNotStarted    = "timer_not_started"
	codeEventNotFound      = "event_not_found"
	codeUserNotFound       = "user_not_found"
	codeEmailTaken         = "email_taken"
	codeAlreadyVerified    = "already_verified"
	codeInvalidCode        = "invalid_code"
	codeInvalidCredentials = "invalid_credentials"
	codeEmailNotVerified   = "email_not_verified"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeRateLimited        = "rate_limited"
	codeServiceUnavailable = "service_unavailable"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error onto a status and stable code.
// Unknown errors are logged and reported as internal errors.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusBadRequest, codeTimerNotStarted, "Timer not started")
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, "Event not found")
	case errors.Is(err, domain.ErrTitleRequired):
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case errors.Is(err, domain.ErrDateRequired):
		writeError(w, http.StatusBadRequest, codeDateRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidTags):
		writeError(w, http.StatusBadRequest, codeInvalidTags, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, codeEmailTaken, "Email already registered")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, codeUserNotFound, "User not found")
	case errors.Is(err, domain.ErrAlreadyVerified):
		writeError(w, http.StatusBadRequest, codeAlreadyVerified, "Email already verified")
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, codeInvalidCode, "Invalid or expired code")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, domain.ErrEmailNotVerified):
		writeError(w, http.StatusForbidden, codeEmailNotVerified, "Email not verified")
	case errors.Is(err, domain.ErrUnauthorized):
		writeUnauthorized(w)
	default:
		logger := log.WithContext(r.Context(), log.WithComponent("http"))
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, codeUnauthorized, "Could not validate credentials")
}
