package user

import (
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// HashPassword bcrypt-hashes a plain password after the length check.
func HashPassword(plain string) (string, error) {
	if len(plain) < minPasswordLength || len(plain) > 72 {
		return "", ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
