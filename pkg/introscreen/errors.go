package introscreen

import "github.com/bft-labs/introscreen/internal/domain"

// Errors returned by the public API. Check them with errors.Is.
var (
	ErrInvalidPreferences = domain.ErrInvalidPreferences
	ErrInvalidContent     = domain.ErrInvalidContent
	ErrHostStateMissing   = domain.ErrHostStateMissing
	ErrStateNotRegistered = domain.ErrStateNotRegistered
	ErrAlreadyInstalled   = domain.ErrAlreadyInstalled
	ErrLoadFailed         = domain.ErrLoadFailed
)
