package clock

import "time"

// Clock supplies the current time for expiry decisions.
// Injecting it keeps eligibility checks testable without real waiting.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}

// systemClock reads the wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock.
func System() Clock {
	return systemClock{}
}

// Fixed returns a Clock frozen at the given instant.
// Intended for tests that need deterministic expiry.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t.UTC()}
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}
