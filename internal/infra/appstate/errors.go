package appstate

import "errors"

var (
	ErrInvalidStateTransition = errors.New("invalid application state transition")
	ErrAlreadyTerminated      = errors.New("application already terminated")
)
