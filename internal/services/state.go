package services

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrSessionClosed is returned when work is started on a torn down session.
	ErrSessionClosed = errors.New("session closed")
	// ErrStaleRefresh is returned when a newer refresh or a logout superseded a refresh.
	ErrStaleRefresh = errors.New("refresh superseded")
)

// AppState is the state of one signed-in session: the credential, the view
// store and the refreshes currently talking to the backend.
type AppState struct {
	credential string
	view       *ViewStateStore

	mu         sync.Mutex
	generation uint64
	inflight   map[uint64]context.CancelFunc
	closed     bool
}

// NewAppState creates the state of a session holding credential.
func NewAppState(credential string, view *ViewStateStore) *AppState {
	return &AppState{
		credential: credential,
		view:       view,
		inflight:   make(map[uint64]context.CancelFunc),
	}
}

// Credential returns the session credential.
func (a *AppState) Credential() string {
	return a.credential
}

// View returns the view store of the session.
func (a *AppState) View() *ViewStateStore {
	return a.view
}

// Refresh is one registered snapshot refresh.
type Refresh struct {
	state  *AppState
	gen    uint64
	cancel context.CancelFunc
}

// BeginRefresh registers a refresh and cancels the ones still running.
// The returned context is cancelled when the refresh is superseded, when the
// session closes or when Done is called.
func (a *AppState) BeginRefresh(ctx context.Context) (context.Context, *Refresh, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, nil, ErrSessionClosed
	}

	for gen, cancel := range a.inflight {
		cancel()
		delete(a.inflight, gen)
	}

	a.generation++
	rctx, cancel := context.WithCancel(ctx)
	a.inflight[a.generation] = cancel

	return rctx, &Refresh{state: a, gen: a.generation, cancel: cancel}, nil
}

// InFlight returns the number of refreshes that have not finished.
func (a *AppState) InFlight() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.inflight)
}

// Commit runs apply if r is still the latest refresh of an open session.
func (r *Refresh) Commit(apply func()) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if r.state.closed || r.gen != r.state.generation {
		return ErrStaleRefresh
	}
	apply()
	return nil
}

// Done releases the refresh.
func (r *Refresh) Done() {
	r.state.mu.Lock()
	delete(r.state.inflight, r.gen)
	r.state.mu.Unlock()
	r.cancel()
}

// Close cancels every running refresh and resets the view.
// It is safe to call more than once.
func (a *AppState) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	for gen, cancel := range a.inflight {
		cancel()
		delete(a.inflight, gen)
	}
	a.mu.Unlock()

	a.view.Reset()
}

// Closed reports whether the session was torn down.
func (a *AppState) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}
