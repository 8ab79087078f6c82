// ABOUTME: Remote control message definitions
// ABOUTME: JSON envelope and payloads exchanged over the control websocket
package remote

import (
	"encoding/json"
	"fmt"

	"github.com/Resonate-Protocol/pcmstream/pkg/player"
)

// Command message types sent by clients
const (
	TypePlay       = "play"
	TypeStop       = "stop"
	TypeVolumeUp   = "volume_up"
	TypeVolumeDown = "volume_down"
	TypeSetVolume  = "set_volume"
	TypeStatus     = "status"
)

// Reply message types sent by the server
const (
	TypeError = "error"
)

// Message is the envelope for all control messages
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage builds an envelope with a JSON-encoded payload
func NewMessage(msgType string, payload interface{}) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return msg, fmt.Errorf("failed to marshal %s payload: %w", msgType, err)
	}
	msg.Payload = data
	return msg, nil
}

// Decode unmarshals the payload into v
func (m Message) Decode(v interface{}) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%s message has no payload", m.Type)
	}
	return json.Unmarshal(m.Payload, v)
}

// SetVolume is the payload of set_volume
type SetVolume struct {
	Level int `json:"level"`
}

// ErrorInfo is the payload of error replies
type ErrorInfo struct {
	Command string `json:"command,omitempty"`
	Message string `json:"message"`
}

// Status is the payload of status replies and broadcasts
type Status struct {
	Player      string `json:"player,omitempty"`
	State       string `json:"state"`
	Volume      int    `json:"volume"`
	Backend     string `json:"backend"`
	SampleRate  int    `json:"sample_rate"`
	SampleWidth int    `json:"sample_width"`
	TotalFrames int    `json:"total_frames"`
	Frames      int    `json:"frames"`
	Session     string `json:"session,omitempty"`
	Outcome     string `json:"outcome,omitempty"`
	Error       string `json:"error,omitempty"`
}

// StatusFrom converts a player snapshot
func StatusFrom(name string, st player.Status) Status {
	s := Status{
		Player:      name,
		State:       st.State.String(),
		Volume:      st.Volume,
		Backend:     st.Backend,
		SampleRate:  st.Stream.SampleRateHz,
		SampleWidth: st.Stream.SampleWidthBits,
		TotalFrames: st.Stream.TotalFrames,
		Frames:      st.Frames,
		Session:     st.Session,
	}
	if st.Last.Outcome != player.OutcomeNone {
		s.Outcome = st.Last.Outcome.String()
	}
	if st.Err != nil {
		s.Error = st.Err.Error()
	}
	return s
}
