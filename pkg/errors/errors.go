package errors

import (
	"errors"
	"fmt"
	"net/http"

	"petcare/domain/shared"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// 业务错误码
	CodeInvalidState       ErrorCode = "INVALID_STATE"
	CodeInsufficient       ErrorCode = "INSUFFICIENT_RESOURCE"
	CodeConcurrentModify   ErrorCode = "CONCURRENT_MODIFICATION"
	CodeAccountDisabled    ErrorCode = "ACCOUNT_DISABLED"
	CodePaymentGateway     ErrorCode = "PAYMENT_GATEWAY_ERROR"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode 返回对应的HTTP状态码
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeInvalidState, CodeInsufficient:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeForbidden, CodeAccountDisabled:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeConcurrentModify:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodePaymentGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 常用错误构造函数

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func InvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "invalid username or password")
}

func PaymentGateway(err error) *AppError {
	return Wrap(err, CodePaymentGateway, "payment gateway request failed")
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}

// sentinelCodes 领域哨兵错误到错误码的映射，按顺序匹配
var sentinelCodes = []struct {
	sentinel error
	code     ErrorCode
}{
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrConcurrentModification, CodeConcurrentModify},
	{shared.ErrConflict, CodeConflict},
	{shared.ErrInvalidInput, CodeValidation},
	{shared.ErrInvalidState, CodeInvalidState},
	{shared.ErrInsufficient, CodeInsufficient},
	{shared.ErrUnauthorized, CodeUnauthorized},
	{shared.ErrAccountDisabled, CodeAccountDisabled},
	{shared.ErrForbidden, CodeForbidden},
}

// FromDomainError 将领域错误映射为应用错误
// 已是 AppError 的直接返回；无法识别的错误包装为内部错误
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range sentinelCodes {
		if errors.Is(err, m.sentinel) {
			return Wrap(err, m.code, messageOf(err))
		}
	}

	return Wrap(err, CodeInternal, err.Error())
}

func messageOf(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	return err.Error()
}
