package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	minBcryptCost     = 10
	maxBcryptCost     = 14
	defaultBcryptCost = 12
)

// ErrWeakPassword reports a password that fails the strength rules.
var ErrWeakPassword = errors.New("password does not meet strength requirements")

// Hasher hashes and verifies passwords with bcrypt. An optional pepper is
// appended to the password before hashing.
type Hasher struct {
	cost   int
	pepper string
}

// NewHasher clamps cost into the supported bcrypt range.
func NewHasher(cost int, pepper string) *Hasher {
	if cost < minBcryptCost || cost > maxBcryptCost {
		cost = defaultBcryptCost
	}
	return &Hasher{cost: cost, pepper: pepper}
}

// Hash returns the bcrypt hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password+h.pepper), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Compare reports whether the password matches the stored hash.
func (h *Hasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+h.pepper)) == nil
}

// ValidatePassword enforces the account password rules: at least 8
// characters with an uppercase letter, a lowercase letter, a digit, and a
// special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return ErrWeakPassword
	}
	return nil
}
