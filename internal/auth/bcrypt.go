package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultWorkFactor is the bcrypt cost applied when none is configured.
const DefaultWorkFactor = 10

// Hasher hashes and verifies passwords with bcrypt at a fixed work factor.
type Hasher struct {
	cost int
}

var _ PasswordAuthenticator = (*Hasher)(nil)

// NewHasher returns a Hasher with the given bcrypt cost. Out-of-range costs
// fall back to DefaultWorkFactor.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultWorkFactor
	}
	return &Hasher{cost: cost}
}

// HashPassword will generate a password hash
func (h *Hasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(hashed), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func (h *Hasher) ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
