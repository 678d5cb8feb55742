package service

import "errors"

// Service errors.
var (
	ErrStoreUnavailable = errors.New("session store unavailable")
	ErrTokenIssue       = errors.New("could not issue session token")

	errAlreadySolved = errors.New("stored session is already solved")
)
