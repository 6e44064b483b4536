// Package common defines shared constants and sentinel errors used across
// roomboard layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrGroupNotFound = errors.New("group not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrUserNotFound  = errors.New("user not found")

	// Service-level errors.
	ErrStoreClosed = errors.New("store closed")
	ErrNoGroup     = errors.New("no active group")

	// Validation errors.
	ErrEmptyPatch = errors.New("empty task patch")

	// Local cache errors. A miss is never surfaced to users.
	ErrCacheMiss    = errors.New("cache miss")
	ErrCacheExpired = errors.New("cache expired")
	ErrCacheCorrupt = errors.New("cache corrupt")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
