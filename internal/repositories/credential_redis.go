package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-bank-client/internal/logger"
)

// credentialKeyPrefix namespaces the credential of the gateway in Redis.
const credentialKeyPrefix = "bank-client:credential:"

// CredentialRedisRepository keeps the session credential of the gateway in Redis
type CredentialRedisRepository struct {
	client *redis.Client
	key    string
	exp    time.Duration // 0 keeps the credential until logout
}

// NewCredentialRedisRepository creates a repository storing the credential under name
func NewCredentialRedisRepository(client *redis.Client, name string, expiration time.Duration) *CredentialRedisRepository {
	return &CredentialRedisRepository{
		client: client,
		key:    credentialKeyPrefix + name,
		exp:    expiration,
	}
}

// Load returns the stored credential, or an empty string when there is none
func (r *CredentialRedisRepository) Load(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Log.Debugw("no stored credential", "key", r.key)
		return "", nil
	}
	if err != nil {
		logger.Log.Errorw("failed to read credential", "key", r.key, "error", err)
		return "", err
	}
	return val, nil
}

// Save stores the credential, replacing any previous one
func (r *CredentialRedisRepository) Save(ctx context.Context, credential string) error {
	err := r.client.Set(ctx, r.key, credential, r.exp).Err()
	if err != nil {
		logger.Log.Errorw("failed to store credential", "key", r.key, "error", err)
		return err
	}
	logger.Log.Debugw("credential stored", "key", r.key, "ttl", r.exp)
	return nil
}

// Delete removes the stored credential
func (r *CredentialRedisRepository) Delete(ctx context.Context) error {
	err := r.client.Del(ctx, r.key).Err()
	if err != nil {
		logger.Log.Errorw("failed to delete credential", "key", r.key, "error", err)
	}
	return err
}
