package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for every stored password.
const HashCost = bcrypt.DefaultCost

// HashPassword hashes a plain password using bcrypt with HashCost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
