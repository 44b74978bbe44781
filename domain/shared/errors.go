/*
Package shared - 领域层共享错误定义

设计原则:
1. 领域层定义哨兵错误(sentinel errors)，用于 errors.Is() 类型安全判断
2. DomainError 在创建时捕获堆栈，但延迟格式化（按需打印）
3. 领域错误不包含 HTTP 状态码等传输层概念
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// 哨兵错误 (Sentinel Errors)
// ============================================================================

var (
	// ErrNotFound 资源未找到
	ErrNotFound = errors.New("not found")

	// ErrConflict 资源冲突（唯一约束冲突，重复点赞/关注等）
	ErrConflict = errors.New("conflict")

	// ErrConcurrentModification 乐观锁版本冲突
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrInvalidInput 无效输入（参数校验失败）
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState 状态不允许该操作（状态流转白名单之外）
	ErrInvalidState = errors.New("invalid state")

	// ErrInsufficient 余额、库存或积分不足
	ErrInsufficient = errors.New("insufficient")

	// ErrUnauthorized 未授权
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAccountDisabled 账号已停用
	ErrAccountDisabled = errors.New("account disabled")

	// ErrForbidden 禁止访问（已授权但无权限）
	ErrForbidden = errors.New("forbidden")
)

// DomainError 领域错误 - 携带业务上下文和堆栈的结构化错误
type DomainError struct {
	// Err 底层哨兵错误，用于 errors.Is() 判断
	Err error

	// Entity 发生错误的实体名称（如 "service_order", "post"）
	Entity string

	// Message 人类可读的错误描述
	Message string

	// Field 可选：发生错误的字段名（用于校验错误）
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack 按需格式化堆栈（只在打印日志时调用）
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack 捕获当前调用栈
// skip: 跳过的帧数（通常为 3：Callers, CaptureStack, NewXxxError）
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack 格式化堆栈帧为字符串切片，过滤 runtime 内部帧，最多返回 10 帧
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

func newDomainError(sentinel error, entity, field, message string) *DomainError {
	return &DomainError{
		Err:     sentinel,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(4),
	}
}

// NewNotFoundError 创建"未找到"领域错误
func NewNotFoundError(entity string) error {
	return newDomainError(ErrNotFound, entity, "", entity+" not found")
}

// NewConflictError 创建"冲突"领域错误
func NewConflictError(entity, message string) error {
	return newDomainError(ErrConflict, entity, "", message)
}

// NewConcurrentModificationError 乐观锁冲突
func NewConcurrentModificationError(entity string) error {
	return newDomainError(ErrConcurrentModification, entity, "", entity+" was modified concurrently")
}

// NewValidationError 创建"校验失败"领域错误
func NewValidationError(entity, field, reason string) error {
	return newDomainError(ErrInvalidInput, entity, field, reason)
}

// NewStateError 状态流转不被允许
func NewStateError(entity, message string) error {
	return newDomainError(ErrInvalidState, entity, "status", message)
}

// NewInsufficientError 余额/库存/积分不足
func NewInsufficientError(entity, message string) error {
	return newDomainError(ErrInsufficient, entity, "", message)
}

// NewUnauthorizedError 凭证无效
func NewUnauthorizedError(entity, reason string) error {
	return newDomainError(ErrUnauthorized, entity, "", reason)
}

// NewAccountDisabledError 账号停用
func NewAccountDisabledError(entity string) error {
	return newDomainError(ErrAccountDisabled, entity, "", entity+" is disabled")
}

// NewForbiddenError 创建"禁止访问"领域错误
func NewForbiddenError(entity, reason string) error {
	return newDomainError(ErrForbidden, entity, "", reason)
}

// Stacker 可提供堆栈的错误接口，API 层统一提取堆栈
type Stacker interface {
	Stack() []string
}
