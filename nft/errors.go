package nft

import (
	"errors"
	"fmt"
)

var (
	ErrTitleTooLong       = errors.New("length limit exceeded")
	ErrNotAvailable       = errors.New("not available")
	ErrObjectNotFound     = errors.New("object not found")
	ErrDuplicateObject    = errors.New("object already exists")
	ErrAlreadyInitialized = errors.New("application identity already initialized")
	ErrNotPublisher       = errors.New("installer is not the module publisher")
	ErrCapabilityConsumed = errors.New("capability already consumed")
	ErrCapabilityMismatch = errors.New("capability does not match object")

	// ErrUninitialized is also ErrNotAvailable for callers that only test the latter.
	ErrUninitialized = fmt.Errorf("application identity %w", ErrNotAvailable)
)
