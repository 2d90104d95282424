package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrStatementNotFound = errors.New("statement not found")
	ErrStatementInvalid  = errors.New("statement is invalid")
	ErrInsufficientFunds = errors.New("insufficient funds")

	ErrTokenInvalid = errors.New("auth token is invalid or expired")
)
