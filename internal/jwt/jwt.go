// Package jwt reads the claims of a session credential when the backend
// issues JSON Web Tokens. Signatures are not verified: the client only uses
// the claims as hints and the backend stays the authority.
package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned for credentials that are not JSON Web Tokens, such as
// opaque DRF tokens.
var ErrNotJWT = errors.New("credential is not a JWT")

// Info is what a credential tells about itself.
type Info struct {
	Subject   string
	ExpiresAt time.Time // zero when the token does not expire
}

// Inspector reads credential claims without verifying them.
type Inspector struct {
	parser *jwt.Parser
}

// New creates a new Inspector
func New() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// Inspect returns the claims of a JWT credential.
func (i *Inspector) Inspect(credential string) (*Info, error) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(credential, claims); err != nil {
		return nil, ErrNotJWT
	}

	info := &Info{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if info.Subject == "" {
		// DRF simplejwt puts the user in user_id rather than sub.
		switch v := claims["user_id"].(type) {
		case string:
			info.Subject = v
		case float64:
			info.Subject = strconv.FormatInt(int64(v), 10)
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// Expired reports whether credential is a JWT whose expiry is not after now.
// Credentials that are not JWTs or carry no expiry are never expired.
func (i *Inspector) Expired(credential string, now time.Time) bool {
	info, err := i.Inspect(credential)
	if err != nil || info.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(info.ExpiresAt)
}
