package clock

import "time"

// Clock is the time source used by the lifecycle usecases.
type Clock interface {
	Now() time.Time
}

// Precision is the resolution timestamps are persisted with (MySQL
// datetime(3)). Anything finer is lost on a round trip.
const Precision = time.Millisecond

// Stamp converts t to UTC at Precision.
func Stamp(t time.Time) time.Time { return t.UTC().Truncate(Precision) }

type systemClock struct{}

func (systemClock) Now() time.Time { return Stamp(time.Now()) }

// System returns a Clock backed by time.Now, in UTC at Precision.
func System() Clock { return systemClock{} }

// Fixed always returns the same instant. Handy in tests.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Func adapts a plain function.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
