package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted bcrypt hash of the plaintext.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword reports whether the plaintext matches the stored hash.
// A mismatch is not an error, just false.
func ComparePassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
