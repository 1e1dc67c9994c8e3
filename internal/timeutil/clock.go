package timeutil

import "time"

// Clock abstracts "now" so every validation point samples the same injectable
// source and tests can pin it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock { return systemClock{} }
