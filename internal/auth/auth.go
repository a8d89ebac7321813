// Package auth handles admin token hashing and verification.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for token hashes.
const bcryptCost = 12

// Errors for authentication failures.
var (
	// ErrMissingToken indicates no admin token was provided.
	ErrMissingToken = errors.New("auth: missing admin token")
	// ErrInvalidToken indicates the admin token does not match the configured hash.
	ErrInvalidToken = errors.New("auth: invalid admin token")
)

// HashToken creates a bcrypt hash of an admin token, suitable for the
// ADMIN_TOKEN_HASH configuration value.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyToken checks a presented token against the configured bcrypt hash.
// Returns ErrInvalidToken on mismatch.
func VerifyToken(token, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		return ErrInvalidToken
	}
	return nil
}
