package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
)

func TestNotice(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", fmt.Errorf("listing accounts: %w", fmt.Errorf("%w: refused", models.ErrTransport)), "bank service unavailable, try again later"},
		{"bank message", &models.APIError{StatusCode: 400, Message: "Insufficient funds"}, "Insufficient funds"},
		{"bank error", &models.APIError{StatusCode: 500, Message: "Traceback"}, "request failed, try again later"},
		{"malformed", fmt.Errorf("%w: eof", models.ErrMalformedResponse), "unexpected response from the bank"},
		{"report failed", &services.ReportFailedError{Status: "failed"}, "report generation failed"},
		{"report timeout", context.DeadlineExceeded, "report generation timed out"},
		{"interrupted", fmt.Errorf("waiting for report: %w", context.Canceled), "interrupted"},
		{"other", errors.New("invalid amount \"x\""), "invalid amount \"x\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Notice(tt.err))
		})
	}
}
