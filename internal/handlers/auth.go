package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=handlers

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, reg models.Registration) (*models.Profile, error)
}

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Profile, error)
}

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context) error
}

// LoginResponse represents a successful login or registration
// swagger:model LoginResponse
type LoginResponse struct {
	// Success message
	// default: Login successful
	Message string `json:"message"`

	// Signed-in user
	User models.Profile `json:"user"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register user
// @Description Create a bank user and sign it in. The credential stays on the gateway.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.Registration true "Registration Request"
// @Success 201 {object} handlers.LoginResponse "User registered"
// @Failure 400 {object} models.ErrorResponse "Invalid input or rejected by the bank"
// @Failure 502 {object} models.ErrorResponse "Bank service unavailable"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.Registration
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
			return
		}

		profile, err := svc.Register(r.Context(), req)
		if err != nil {
			writeError(w, err, "Registration failed")
			return
		}

		writeJSON(w, http.StatusCreated, LoginResponse{Message: "Registration successful", User: *profile})
	}
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate against the bank and keep the credential on the gateway
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.Credentials true "Login Request"
// @Success 200 {object} handlers.LoginResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid username or password"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
			return
		}

		profile, err := svc.Login(r.Context(), req)
		if err != nil {
			writeError(w, err, "Login failed")
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", User: *profile})
	}
}

// NewLogoutHandler returns an HTTP handler that ends the session.
// @Summary User logout
// @Description Cancel pending refreshes, clear the dashboard and forget the credential
// @Tags auth
// @Produce json
// @Success 200 {object} models.MessageResponse "Logged out"
// @Failure 401 {object} models.ErrorResponse "Not logged in"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context()); err != nil {
			writeError(w, err, "Logout failed")
			return
		}
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
	}
}
