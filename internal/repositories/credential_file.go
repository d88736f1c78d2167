package repositories

import (
	"context"
	"sync"

	"github.com/sbilibin2017/gw-bank-client/internal/config"
	"github.com/sbilibin2017/gw-bank-client/internal/logger"
)

// CredentialFileRepository keeps the credential of bankctl in its profile file.
// The other profile fields are preserved on every write.
type CredentialFileRepository struct {
	path string
	mu   sync.Mutex
}

// NewCredentialFileRepository creates a repository backed by the profile at path.
func NewCredentialFileRepository(path string) *CredentialFileRepository {
	return &CredentialFileRepository{path: path}
}

// Load returns the stored credential, or an empty string when there is none.
func (r *CredentialFileRepository) Load(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := config.LoadProfile(r.path)
	if err != nil {
		return "", err
	}
	return p.Token, nil
}

// Save stores the credential.
func (r *CredentialFileRepository) Save(_ context.Context, credential string) error {
	return r.update(func(p *config.Profile) { p.Token = credential })
}

// Delete removes the credential from the profile.
func (r *CredentialFileRepository) Delete(_ context.Context) error {
	return r.update(func(p *config.Profile) { p.Token = "" })
}

func (r *CredentialFileRepository) update(apply func(p *config.Profile)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := config.LoadProfile(r.path)
	if err != nil {
		return err
	}
	apply(p)
	if err := config.SaveProfile(r.path, p); err != nil {
		logger.Log.Errorw("failed to write profile", "path", r.path, "error", err)
		return err
	}
	return nil
}
