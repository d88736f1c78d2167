package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

//go:generate mockgen -source=account.go -destination=mock_account.go -package=handlers

// AccountCreator defines the interface that the service must implement.
type AccountCreator interface {
	CreateAccount(ctx context.Context, accountType, currency string) (*models.Account, error)
}

// ProfileReader returns the signed-in user.
type ProfileReader interface {
	Profile(ctx context.Context) (*models.ProfileResponse, error)
}

// CreateAccountRequest represents the JSON body for opening an account
// swagger:model CreateAccountRequest
type CreateAccountRequest struct {
	// Account type
	// required: true
	// default: SAVINGS
	AccountType string `json:"account_type"`

	// Currency, NPR when empty
	// default: NPR
	Currency string `json:"currency"`
}

// NewCreateAccountHandler returns an HTTP handler for opening an account.
// @Summary Open account
// @Description Open a SAVINGS, CHECKING or BUSINESS account, then reload the dashboard
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body handlers.CreateAccountRequest true "Account Request"
// @Success 201 {object} models.Account "Account created"
// @Failure 400 {object} models.ErrorResponse "Invalid account type or rejected by the bank"
// @Failure 401 {object} models.ErrorResponse "Not logged in or session expired"
// @Router /accounts [post]
func NewCreateAccountHandler(svc AccountCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
			return
		}

		account, err := svc.CreateAccount(r.Context(), req.AccountType, req.Currency)
		if err != nil {
			writeError(w, err, "Account creation failed")
			return
		}
		writeJSON(w, http.StatusCreated, account)
	}
}

// NewProfileHandler returns an HTTP handler for the user profile.
// @Summary Profile
// @Description Profile of the signed-in user together with the current account
// @Tags accounts
// @Produce json
// @Success 200 {object} models.ProfileResponse "Profile"
// @Failure 401 {object} models.ErrorResponse "Not logged in or session expired"
// @Failure 502 {object} models.ErrorResponse "Bank service unavailable"
// @Router /profile [get]
func NewProfileHandler(svc ProfileReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := svc.Profile(r.Context())
		if err != nil {
			writeError(w, err, "Could not load profile")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
