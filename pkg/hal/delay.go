// ABOUTME: Host implementations of the delay and spawn capabilities
// ABOUTME: Busy-wait and sleeping delays plus a goroutine spawner
package hal

import "time"

// SpinDelay busy-waits on the monotonic clock. time.Sleep cannot hold
// microsecond periods on most hosts.
type SpinDelay struct{}

func (SpinDelay) DelayMicros(us int) {
	if us <= 0 {
		return
	}
	deadline := time.Now().Add(time.Duration(us) * time.Microsecond)
	for time.Now().Before(deadline) {
	}
}

// SleepDelay yields to the scheduler, trading accuracy for idle CPU
type SleepDelay struct{}

func (SleepDelay) DelayMicros(us int) {
	if us <= 0 {
		return
	}
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// NoDelay returns immediately, for tests and offline rendering
type NoDelay struct{}

func (NoDelay) DelayMicros(int) {}

// GoSpawner runs work on a new goroutine
type GoSpawner struct{}

func (GoSpawner) Go(fn func()) { go fn() }
