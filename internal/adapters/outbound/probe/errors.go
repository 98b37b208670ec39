package probe

import "errors"

// ErrUnexpectedStatus is logged when an application answers with anything but 200.
var ErrUnexpectedStatus = errors.New("unexpected status code")
