package combat

import "time"

// Scheduler defers enemy turns. Schedule returns a function that cancels the
// pending call if it has not run yet.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// ImmediateScheduler runs fn synchronously, ignoring the delay.
type ImmediateScheduler struct{}

// Schedule calls fn before returning.
func (ImmediateScheduler) Schedule(_ time.Duration, fn func()) func() {
	fn()
	return func() {}
}

// TimerScheduler waits on a timer goroutine, then hands fn to Dispatch, which
// must run it on the goroutine that owns the session.
type TimerScheduler struct {
	Dispatch func(fn func())
}

// NewTimerScheduler creates a scheduler that delivers callbacks via dispatch.
//
// Precondition: dispatch must be non-nil.
func NewTimerScheduler(dispatch func(fn func())) *TimerScheduler {
	return &TimerScheduler{Dispatch: dispatch}
}

// Schedule starts a timer for fn.
func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, func() {
		s.Dispatch(fn)
	})
	return func() { t.Stop() }
}
