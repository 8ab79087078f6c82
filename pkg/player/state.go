// ABOUTME: Playback state machine and status snapshot
// ABOUTME: Unopened -> Ready -> Playing -> Stopped, replay from Stopped
package player

// State is the player lifecycle state
type State int

const (
	StateUnopened State = iota
	StateReady
	StatePlaying
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StreamConfig is fixed once Begin succeeds
type StreamConfig struct {
	SampleWidthBits int
	SampleRateHz    int
	TotalFrames     int
	BufferSize      int
}

// Status is a snapshot of the player
type Status struct {
	State   State
	Volume  int
	Backend string
	Stream  StreamConfig

	// Session identifies the current or last Play call
	Session string

	// Frames counts frames written in the current or last session
	Frames int

	// Last is the result of the last finished session
	Last Result

	// Err is the error that ended the last session, if any
	Err error
}
