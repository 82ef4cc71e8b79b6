package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gamehub/backend/internal/models"
)

// ErrNotFound is returned for unknown or expired session tokens.
var ErrNotFound = errors.New("session not found")

// Store keeps server-side sessions keyed by opaque token. The payload is
// the minimal user stub; handlers re-fetch the full record when they need
// more than id/username/role.
type Store interface {
	Create(user models.SessionUser) (string, error)
	Get(token string) (*models.SessionUser, error)
	Delete(token string) error
}

// newToken returns a 256-bit random hex token.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
