// Package singleinstance keeps a second keyhook daemon from installing a
// competing keyboard hook for the same user.
package singleinstance

import "errors"

// ErrAlreadyRunning is returned by TryLock when another instance holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

var errNameRequired = errors.New("lock name is required")
