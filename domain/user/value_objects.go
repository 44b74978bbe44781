package user

import (
	"regexp"
	"strings"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
	phoneRegex    = regexp.MustCompile(`^1[3-9][0-9]{9}$`)
)

// Gender 性别
type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderUnknown, GenderMale, GenderFemale:
		return true
	}
	return false
}

// NormalizeUsername trims and validates a login name.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if !usernameRegex.MatchString(username) {
		return "", ErrInvalidUsername
	}
	return username, nil
}

// ValidatePhone accepts an empty phone or a mainland mobile number.
func ValidatePhone(phone string) error {
	if phone == "" || phoneRegex.MatchString(phone) {
		return nil
	}
	return ErrInvalidPhone
}
