// Package v1 provides the business logic for API version 1: account
// registration and login, bearer-token verification, and the favorites
// list.
//
// Error Handling:
// This package defines sentinel errors that represent common failures.
// These errors should be wrapped with context using fmt.Errorf("%w") when
// returned from business logic methods.
//
// Example Usage:
//
//	if row == nil {
//	    return "", fmt.Errorf("authenticate user %q: %w", email, ErrUserNotFound)
//	}
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrInvalidCredentials):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
//	}
package v1

import "errors"

// Sentinel errors for authentication and favorites operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrInvalidInput indicates a request failed basic validation.
	// HTTP Status: 400 Bad Request
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmailTaken indicates the email already belongs to a user.
	// HTTP Status: 400 Bad Request
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound indicates the user does not exist in the system.
	// HTTP Status: 400 Bad Request (don't reveal user existence)
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates the provided credentials are incorrect.
	// HTTP Status: 400 Bad Request
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates the bearer token failed verification.
	// HTTP Status: 403 Forbidden
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the bearer token is past its expiry.
	// HTTP Status: 403 Forbidden
	ErrTokenExpired = errors.New("token expired")
)
