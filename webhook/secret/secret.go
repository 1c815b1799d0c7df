/* Package secret handles webhook protection keys: the management layer
 * generates them, the delivery pipeline verifies them.
 */
package secret

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

const (
	// KeyPrefix marks generated protection keys
	KeyPrefix = "tgh_"

	// keyBytes is the entropy of a generated key (256 bits)
	keyBytes = 32
)

// GenerateKey creates a new cryptographically secure protection key
func GenerateKey() (string, error) {
	raw := make([]byte, keyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// Verify compares the caller-supplied key against the configured one in
// constant time to prevent timing attacks
func Verify(configured, presented string) bool {
	if configured == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(presented)) == 1
}
