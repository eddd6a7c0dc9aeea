package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrWrongPassword        = errors.New("wrong password")
	ErrRateLimited          = errors.New("too many failed attempts")
	ErrServerNotInitialized = errors.New("no access password configured")
	ErrTokenRevoked         = errors.New("token revoked or never issued")
)
