package hub

import (
	"time"

	"champ-draft-backend/internal/room"
)

// Clock abstracts the timer primitives so tests can drive the hub on a fake
// clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) room.TimerHandle
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) room.TimerHandle {
	return time.AfterFunc(d, f)
}

// NewClock returns the wall clock.
func NewClock() Clock { return realClock{} }
