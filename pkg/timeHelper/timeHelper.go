package timehelper

import "time"

// Clock supplies the timestamps written to pick and score records. It is
// injected so tests can pin time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real returns the wall clock.
func Real() Clock { return realClock{} }

// Frozen returns a clock stuck at t.
func Frozen(t time.Time) Clock { return frozenClock(t) }

type frozenClock time.Time

func (c frozenClock) Now() time.Time { return time.Time(c) }
