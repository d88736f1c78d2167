package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
	"github.com/sbilibin2017/gw-bank-client/internal/validator"
)

// Generic notices shown instead of backend detail.
const (
	msgInvalidBody     = "invalid request body"
	msgLoginRequired   = "Please log in"
	msgSessionExpired  = "Session expired, please log in again"
	msgBadCredentials  = "Invalid username or password"
	msgNoAccount       = "No account yet, create one first"
	msgUnreachable     = "Bank service unavailable, try again later"
	msgInternal        = "Internal server error"
	msgRefreshReplaced = "Refresh superseded by a newer one"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and a notice. fallback is the notice
// for failures the user can do nothing specific about.
func writeError(w http.ResponseWriter, err error, fallback string) {
	code, msg := classify(err, fallback)
	if code >= http.StatusInternalServerError {
		logger.Log.Errorw("request failed", "err", err)
	}
	writeJSON(w, code, models.ErrorResponse{Error: msg})
}

func classify(err error, fallback string) (int, string) {
	var verr *validator.Error
	var apiErr *models.APIError
	var reportErr *services.ReportFailedError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, services.ErrNotAuthenticated):
		return http.StatusUnauthorized, msgLoginRequired
	case errors.Is(err, services.ErrSessionExpired), errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, msgSessionExpired
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgBadCredentials
	case errors.Is(err, services.ErrNoAccount):
		return http.StatusNotFound, msgNoAccount
	case errors.Is(err, services.ErrRecipientRequired),
		errors.Is(err, services.ErrInvalidAccountType),
		errors.Is(err, services.ErrInvalidRecencyWindow),
		errors.Is(err, services.ErrInvalidTypeFilter):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrStaleRefresh):
		return http.StatusConflict, msgRefreshReplaced
	case errors.As(err, &reportErr):
		return http.StatusBadGateway, fallback
	case errors.Is(err, services.ErrReportAttemptsExhausted), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, fallback
	case errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError:
		if apiErr.Message != "" {
			return http.StatusBadRequest, apiErr.Message
		}
		return http.StatusBadRequest, fallback
	case errors.Is(err, models.ErrTransport):
		return http.StatusBadGateway, msgUnreachable
	case errors.As(err, &apiErr), errors.Is(err, models.ErrMalformedResponse):
		return http.StatusBadGateway, fallback
	}
	return http.StatusInternalServerError, msgInternal
}
