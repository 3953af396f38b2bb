package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the authentication core. Handlers translate
// these into HTTP status codes; the core itself never deals in transport
// codes.
var (
	// ErrWrongCredentials covers both an unknown username and a password
	// mismatch so the response cannot be used for username enumeration.
	ErrWrongCredentials = errors.New("wrong username or password")
	// ErrUsernameTaken is returned when registering a name that already exists.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrRefreshRejected is the base error wrapped by RefreshRejectedError.
	ErrRefreshRejected = errors.New("refresh token can not be accepted")
	// ErrRefreshExpired is returned when a presented refresh token is past
	// its not_after timestamp.
	ErrRefreshExpired = errors.New("refresh token expired")
	// ErrInvalidUser is returned when a refresh token's owner no longer exists.
	ErrInvalidUser = errors.New("token for invalid user")
	// ErrNoToken is returned for a missing or malformed Authorization header.
	ErrNoToken = errors.New("no token")
	// ErrTokenExpired is returned when an access token's signature is valid
	// but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidToken is returned for a tampered or structurally invalid
	// access token.
	ErrInvalidToken = errors.New("invalid token")
)

// RefreshRejectedError reports a rejected refresh attempt. Invalidated is
// the number of descendant tokens deactivated when the rejection was caused
// by a replayed token; callers must read the count from the field, not from
// the message. errors.Is(err, ErrRefreshRejected) matches it.
type RefreshRejectedError struct {
	Invalidated int
}

func (e *RefreshRejectedError) Error() string {
	if e.Invalidated == 0 {
		return ErrRefreshRejected.Error()
	}
	return fmt.Sprintf("%s: %d descendant tokens invalidated", ErrRefreshRejected.Error(), e.Invalidated)
}

func (e *RefreshRejectedError) Unwrap() error { return ErrRefreshRejected }
