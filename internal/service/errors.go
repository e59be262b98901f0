package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("wrong email or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrWelcomeEmailNotSent = errors.New("welcome email could not be sent")

	// ErrUnitMismatch aborts a reconciliation when a required ingredient's
	// unit string differs from the stored one. Units are compared
	// byte-for-byte; no conversion is attempted.
	ErrUnitMismatch = errors.New("unit mismatch between required and stored ingredient")

	ErrMalformedIngredients = errors.New("malformed ingredients document")
)
