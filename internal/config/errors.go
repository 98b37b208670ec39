package config

import "errors"

var (
	ErrInvalidEnv        = errors.New("invalid environment")
	ErrDurationTooSmall  = errors.New("duration is below minimum")
	ErrInvalidHostsFile  = errors.New("invalid hosts file")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrScheduleConflict  = errors.New("schedule and pollInterval are mutually exclusive")
	ErrInvalidSchedule   = errors.New("invalid schedule")
	ErrHostsFileRequired = errors.New("hosts file is required")
)
