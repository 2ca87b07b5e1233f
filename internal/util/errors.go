package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrPermissionDenied = errors.New("permission denied")

	ErrGroupNotFound  = errors.New("group not found")
	ErrAlreadyMember  = errors.New("already a member of this group")
	ErrNotMember      = errors.New("not a member of this group")
	ErrEventNotFound  = errors.New("event not found")
	ErrEventInPast    = errors.New("event start time is in the past")

	// ErrValidation covers missing or empty required inputs, detected
	// before any persistence call.
	ErrValidation = errors.New("invalid input")

	// ErrPartialFailure marks the documented at-least-once case: the
	// activity log row was written but the streak bookkeeping failed.
	ErrPartialFailure = errors.New("activity logged but streak update failed")
)
