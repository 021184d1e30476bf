package event

import "errors"

var (
	ErrNameRequired = errors.New("event name is required")
	ErrNotConverged = errors.New("event fix did not converge")
	ErrNoEvents     = errors.New("fusion needs at least one event")
	ErrUnknownField = errors.New("unknown event field")
)
