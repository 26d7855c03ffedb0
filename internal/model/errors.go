package model

import "errors"

var (
	// ErrNotFound is returned when a looked up row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUserNotFound is returned when the profile being operated on does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreUnavailable marks failures to reach the relational store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrOperationFailed is the sentinel returned when a whole profile operation was aborted.
	ErrOperationFailed = errors.New("profile operation failed")
)
