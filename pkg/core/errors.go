package core

import "errors"

// Common errors.
var (
	ErrNotWatchable = errors.New("store does not support watching")
)
