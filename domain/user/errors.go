/*
Package user 定义用户领域错误。
*/
package user

import (
	"petcare/domain/shared"
)

var (
	ErrInvalidUsername = shared.NewValidationError("user", "username", "username must be 3-32 letters, digits or underscores")
	ErrInvalidPassword = shared.NewValidationError("user", "password", "password must be 6-72 characters")
	ErrInvalidPhone    = shared.NewValidationError("user", "phone", "invalid phone number")
	ErrInvalidGender   = shared.NewValidationError("user", "gender", "gender must be unknown, male or female")
	ErrInvalidNickname = shared.NewValidationError("user", "nickname", "nickname must be at most 32 characters")
	ErrWrongPassword   = shared.NewValidationError("user", "old_password", "old password is incorrect")
)

func NewUserNotFoundError() error {
	return shared.NewNotFoundError("user")
}

func NewUsernameTakenError(username string) error {
	return shared.NewConflictError("user", "username already exists: "+username)
}

func NewInsufficientBalanceError() error {
	return shared.NewInsufficientError("user", "insufficient balance")
}

func NewInsufficientIntegralError() error {
	return shared.NewInsufficientError("user", "insufficient integral points")
}

func NewAddressNotFoundError() error {
	return shared.NewNotFoundError("address")
}
