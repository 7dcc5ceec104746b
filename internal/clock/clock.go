// Package clock abstracts time so services never read the wall clock directly.
package clock

import (
	"context"
	"time"
)

type Clock interface {
	Now(ctx context.Context) time.Time
}

type systemClock struct{}

func (systemClock) Now(context.Context) time.Time {
	return time.Now().UTC()
}

// New returns the system clock.
func New() Clock {
	return systemClock{}
}
