// Package credential provides password hashing and signed token issuance.
package credential

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (hash string, algo string, err error)
	Verify(hash, pw string) bool
	NeedsRehash(hash string) bool
}

// DefaultCost matches the cost the original deployment hashed with.
const DefaultCost = 12

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", "", err
	}
	return string(h), fmt.Sprintf("bcrypt:%d", cost), nil
}

// Verify reports whether pw matches hash. A malformed hash is treated the
// same as a mismatch so callers can't distinguish the two cases.
func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// NeedsRehash reports whether the stored hash was produced with a lower
// cost than currently configured, meaning it should be re-hashed on the
// next successful verification.
func (b BcryptHasher) NeedsRehash(hash string) bool {
	want := b.Cost
	if want == 0 {
		want = DefaultCost
	}
	// format: $2b$10$...
	parts := strings.Split(hash, "$")
	if len(parts) < 4 {
		return false
	}
	cost, err := strconv.Atoi(parts[2])
	if err != nil {
		return false
	}
	return cost < want
}
