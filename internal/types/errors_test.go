package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNewError() {
	err := NewError(ErrInsufficientFunds, "not enough coins")

	s.Equal(ErrInsufficientFunds, err.Code)
	s.Equal("not enough coins", err.Message)
	s.Nil(err.Err)
}

func (s *ErrorTestSuite) TestWrapError() {
	underlying := errors.New("connection failed")

	err := WrapError(ErrDatabaseError, "saving record", underlying)

	s.Equal(ErrDatabaseError, err.Code)
	s.Equal("saving record", err.Message)
	s.ErrorIs(err, underlying, "wrapped error should unwrap to the cause")
}

func (s *ErrorTestSuite) TestErrorString() {
	testCases := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "Simple error",
			err:      NewError(ErrInvalidWager, "wager must be positive"),
			expected: "INVALID_WAGER: wager must be positive",
		},
		{
			name:     "Wrapped error",
			err:      WrapError(ErrDatabaseError, "saving record", errors.New("disk full")),
			expected: "DATABASE_ERROR: saving record (disk full)",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error())
		})
	}
}

func (s *ErrorTestSuite) TestIsCode() {
	coded := NewError(ErrCooldownActive, "come back tomorrow")

	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{"Matching code", coded, ErrCooldownActive, true},
		{"Matching code through fmt wrap", fmt.Errorf("daily: %w", coded), ErrCooldownActive, true},
		{"Different code", coded, ErrInsufficientFunds, false},
		{"Plain error", errors.New("boom"), ErrCooldownActive, false},
		{"Nil error", nil, ErrCooldownActive, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, IsCode(tc.err, tc.code))
		})
	}
}

func (s *ErrorTestSuite) TestAs() {
	coded := NewError(ErrUnknownReward, "no such reward")

	var target *Error
	s.True(As(coded, &target))
	s.Equal(coded, target)

	target = nil
	s.False(As(errors.New("plain"), &target))
	s.Nil(target)

	s.False(As(nil, &target))
	s.False(As(coded, nil))
}

func (s *ErrorTestSuite) TestIsUserFacing() {
	s.True(IsUserFacing(NewError(ErrInsufficientFunds, "")))
	s.True(IsUserFacing(fmt.Errorf("slots: %w", NewError(ErrInvalidWager, ""))))
	s.False(IsUserFacing(NewError(ErrDatabaseError, "")))
	s.False(IsUserFacing(errors.New("boom")))
}
