// Package clock schedules callbacks on a single logical thread.
//
// Every callback handed to a Clock runs serialized with every other callback
// of that Clock, so state touched only from callbacks needs no locking.
package clock

import (
	"errors"
	"time"
)

var (
	ErrLoopClosed = errors.New("loop is closed")
)

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or was already stopped.
	Stop() bool
}

// Clock tells time and schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
