package types

import "errors"

// Standard errors returned by the engine. Callers match these with
// errors.Is; the store and engines wrap them with context.
var (
	// ErrNotFound means a referenced node or session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateURL means a node with the same URL already exists.
	ErrDuplicateURL = errors.New("duplicate url")

	// ErrInvalidURL means a URL could not be parsed or has no http scheme.
	ErrInvalidURL = errors.New("invalid url")

	// ErrSessionExists means a session with that name already exists.
	ErrSessionExists = errors.New("session already exists")
)
