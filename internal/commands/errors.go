package commands

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
	"github.com/sbilibin2017/gw-bank-client/internal/validator"
)

// Notice turns a command error into the message shown to the user. Backend
// detail is only shown when the bank phrased it for users.
func Notice(err error) string {
	var verr *validator.Error
	var apiErr *models.APIError
	var reportErr *services.ReportFailedError

	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, services.ErrNotAuthenticated):
		return "not logged in, run `bankctl login`"
	case errors.Is(err, services.ErrSessionExpired), errors.Is(err, models.ErrUnauthorized):
		return "session expired, run `bankctl login` again"
	case errors.Is(err, models.ErrTransport):
		return "bank service unavailable, try again later"
	case errors.As(err, &reportErr):
		return "report generation failed"
	case errors.Is(err, services.ErrReportAttemptsExhausted), errors.Is(err, context.DeadlineExceeded):
		return "report generation timed out"
	case errors.Is(err, context.Canceled):
		return "interrupted"
	case errors.As(err, &apiErr):
		if apiErr.StatusCode < 500 && apiErr.Message != "" {
			return apiErr.Message
		}
		return "request failed, try again later"
	case errors.Is(err, models.ErrMalformedResponse):
		return "unexpected response from the bank"
	}
	return err.Error()
}
