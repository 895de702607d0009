package domain

import "errors"

// Domain errors represent error conditions in the intro screen domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrInvalidPreferences is returned when preferences validation fails.
	ErrInvalidPreferences = errors.New("introscreen: invalid preferences")

	// ErrInvalidContent is returned when intro screen content is incomplete.
	ErrInvalidContent = errors.New("introscreen: invalid content")

	// ErrHostStateMissing is returned when the host state type used by the
	// preferences is not registered with the host app.
	ErrHostStateMissing = errors.New("introscreen: host state not registered")

	// ErrStateNotRegistered is returned when a duration strategy targets a
	// state type that the host app does not know.
	ErrStateNotRegistered = errors.New("introscreen: target state not registered")

	// ErrAlreadyInstalled is returned when a second orchestrator is installed
	// into the same host app.
	ErrAlreadyInstalled = errors.New("introscreen: already installed")

	// ErrLoadFailed is returned by loaders when a bundle cannot be loaded.
	ErrLoadFailed = errors.New("introscreen: load failed")
)
