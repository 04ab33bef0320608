package testutil

import "errors"

// ErrSimulated is returned by fakes to drive failure paths.
var ErrSimulated = errors.New("simulated failure")
