package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Economy errors
	ErrInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrInvalidWager      ErrorCode = "INVALID_WAGER"
	ErrCooldownActive    ErrorCode = "COOLDOWN_ACTIVE"
	ErrUnknownReward     ErrorCode = "UNKNOWN_REWARD"

	// Command errors
	ErrInvalidCommand  ErrorCode = "INVALID_COMMAND"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrRateLimited     ErrorCode = "RATE_LIMITED"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrNetworkError  ErrorCode = "NETWORK_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
)

// Error is a coded error returned by the economy services
type Error struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in an Error
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether err is (or wraps) an Error with the given code
func IsCode(err error, code ErrorCode) bool {
	var coded *Error
	if !As(err, &coded) {
		return false
	}
	return coded.Code == code
}

// As finds the first Error in err's chain
func As(err error, target **Error) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.As(err, target)
}

// IsUserFacing reports whether err describes a condition the user caused
// (bad input, not enough coins, cooldown) rather than a system failure.
func IsUserFacing(err error) bool {
	var coded *Error
	if !As(err, &coded) {
		return false
	}
	switch coded.Code {
	case ErrInsufficientFunds, ErrInvalidWager, ErrCooldownActive, ErrUnknownReward,
		ErrInvalidCommand, ErrInvalidArgument, ErrRateLimited:
		return true
	}
	return false
}
