package pinger

import "errors"

var (
	ErrNilPinger               = errors.New("pinger cannot be nil")
	ErrPingerAlreadyRegistered = errors.New("pinger already registered")
	ErrAlreadyStarted          = errors.New("pinger service already started")
)
