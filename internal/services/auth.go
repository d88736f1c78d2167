package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/validator"
)

// Error variables
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired, please log in again")
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// AuthAPI defines the authentication endpoints of the bank backend.
type AuthAPI interface {
	Register(ctx context.Context, reg models.Registration) (*models.AuthResult, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Logout(ctx context.Context, credential string) error
}

// CredentialStore persists the session credential between runs.
// Load returns an empty credential when none is stored.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, credential string) error
	Delete(ctx context.Context) error
}

// CredentialInspector tells whether a credential is known to be expired
// without asking the backend.
type CredentialInspector interface {
	Expired(credential string, now time.Time) bool
}

// SessionProvider gives access to the current session.
type SessionProvider interface {
	State() (*AppState, error)
	Expire(ctx context.Context, state *AppState)
}

// AuthService handles registration, login and the session lifecycle.
type AuthService struct {
	api         AuthAPI
	store       CredentialStore
	inspector   CredentialInspector
	defaultDays int
	now         func() time.Time

	mu    sync.RWMutex
	state *AppState
}

// NewAuthService creates a new AuthService instance. inspector may be nil.
func NewAuthService(api AuthAPI, store CredentialStore, inspector CredentialInspector, defaultDays int) *AuthService {
	return &AuthService{
		api:         api,
		store:       store,
		inspector:   inspector,
		defaultDays: defaultDays,
		now:         time.Now,
	}
}

// Register creates a backend user and signs it in.
func (svc *AuthService) Register(ctx context.Context, reg models.Registration) (*models.Profile, error) {
	if err := validator.Struct(reg); err != nil {
		return nil, err
	}

	res, err := svc.api.Register(ctx, reg)
	if err != nil {
		logger.Log.Errorw("registration failed", "username", reg.Username, "err", err)
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: registration returned no token", models.ErrMalformedResponse)
	}

	svc.startSession(ctx, res.Token)
	logger.Log.Infow("user registered", "username", res.User.Username)
	return &res.User, nil
}

// Login authenticates against the backend and starts a session.
func (svc *AuthService) Login(ctx context.Context, creds models.Credentials) (*models.Profile, error) {
	if err := validator.Struct(creds); err != nil {
		return nil, err
	}

	res, err := svc.api.Login(ctx, creds)
	if err != nil {
		var apiErr *models.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			logger.Log.Errorw("invalid credentials", "username", creds.Username)
			return nil, ErrInvalidCredentials
		}
		logger.Log.Errorw("login failed", "username", creds.Username, "err", err)
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: login returned no token", models.ErrMalformedResponse)
	}

	svc.startSession(ctx, res.Token)
	logger.Log.Infow("user logged in", "username", res.User.Username)
	return &res.User, nil
}

// Logout ends the session. The backend is told best-effort; the local
// session is always torn down.
func (svc *AuthService) Logout(ctx context.Context) error {
	svc.mu.Lock()
	state := svc.state
	svc.state = nil
	svc.mu.Unlock()

	if state == nil {
		return ErrNotAuthenticated
	}
	state.Close()

	if err := svc.api.Logout(ctx, state.Credential()); err != nil {
		logger.Log.Warnw("backend logout failed", "err", err)
	}

	if err := svc.store.Delete(ctx); err != nil {
		logger.Log.Errorw("failed to delete stored credential", "err", err)
		return fmt.Errorf("deleting credential: %w", err)
	}

	logger.Log.Infow("user logged out")
	return nil
}

// Restore resumes the session of a stored credential. The credential is not
// validated with the backend; a credential that carries an expiry in the past
// is discarded.
func (svc *AuthService) Restore(ctx context.Context) (bool, error) {
	credential, err := svc.store.Load(ctx)
	if err != nil {
		logger.Log.Errorw("failed to load stored credential", "err", err)
		return false, err
	}
	if credential == "" {
		return false, nil
	}

	if svc.inspector != nil && svc.inspector.Expired(credential, svc.now()) {
		logger.Log.Infow("stored credential expired, discarding")
		if err := svc.store.Delete(ctx); err != nil {
			logger.Log.Warnw("failed to delete expired credential", "err", err)
		}
		return false, nil
	}

	svc.mu.Lock()
	if svc.state != nil {
		svc.state.Close()
	}
	svc.state = NewAppState(credential, NewViewStateStore(svc.defaultDays, nil))
	svc.mu.Unlock()

	return true, nil
}

// State returns the current session.
func (svc *AuthService) State() (*AppState, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	if svc.state == nil {
		return nil, ErrNotAuthenticated
	}
	return svc.state, nil
}

// Expire tears down state after the backend rejected its credential.
// A session that already replaced state is left alone.
func (svc *AuthService) Expire(ctx context.Context, state *AppState) {
	svc.mu.Lock()
	if svc.state != state || state == nil {
		svc.mu.Unlock()
		return
	}
	svc.state = nil
	svc.mu.Unlock()

	state.Close()
	if err := svc.store.Delete(ctx); err != nil {
		logger.Log.Warnw("failed to delete rejected credential", "err", err)
	}
	logger.Log.Warnw("session expired")
}

func (svc *AuthService) startSession(ctx context.Context, credential string) {
	svc.mu.Lock()
	if svc.state != nil {
		svc.state.Close()
	}
	svc.state = NewAppState(credential, NewViewStateStore(svc.defaultDays, nil))
	svc.mu.Unlock()

	if err := svc.store.Save(ctx, credential); err != nil {
		logger.Log.Warnw("failed to persist credential, session will not survive a restart", "err", err)
	}
}

// backendError converts a failed backend call into the error reported to
// callers, tearing the session down when the credential was rejected.
func backendError(ctx context.Context, sessions SessionProvider, state *AppState, op string, err error) error {
	if errors.Is(err, models.ErrUnauthorized) {
		sessions.Expire(ctx, state)
		return ErrSessionExpired
	}
	logger.Log.Errorw("backend call failed", "op", op, "err", err)
	return fmt.Errorf("%s: %w", op, err)
}
