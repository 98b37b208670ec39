package monitor

import "errors"

var (
	ErrInvalidHost        = errors.New("invalid host")
	ErrInvalidApplication = errors.New("invalid application")
	ErrDuplicateTarget    = errors.New("duplicate target")
	ErrHostNotFound       = errors.New("host not found")
	ErrHostTaskStale      = errors.New("host task stale")
	ErrNotReady           = errors.New("monitor service is not ready")
	ErrAlreadyStarted     = errors.New("monitor service already started")
	ErrScheduleExhausted  = errors.New("schedule has no future fire time")
)
