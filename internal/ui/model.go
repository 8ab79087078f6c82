// ABOUTME: Bubbletea model for player TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
	"github.com/Resonate-Protocol/pcmstream/pkg/player"
)

// Model represents the TUI state
type Model struct {
	controls *Controls

	// Stream
	file        string
	backend     string
	sampleRate  int
	sampleWidth int
	totalFrames int

	// Playback
	state   player.State
	volume  int
	frames  int
	session string
	outcome string
	lastErr string

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int
}

// StatusMsg updates TUI state from a player snapshot
type StatusMsg struct {
	Status player.Status
}

// NewModel creates a new TUI model
func NewModel(file string, ctrl *Controls) Model {
	return Model{
		controls: ctrl,
		file:     file,
		volume:   audio.DefaultVolume,
		state:    player.StateUnopened,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg.Status)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := m.renderHeader()
	s += m.renderStreamInfo()
	s += m.renderControls()
	if m.showDebug {
		s += m.renderDebug()
	}
	s += m.renderHelp()
	return s
}

func (m Model) renderHeader() string {
	return fmt.Sprintf(`┌─ pcmstream ──────────────────────────────────────────┐
│ File:   %-45s │
│ State:  %-45s │
├──────────────────────────────────────────────────────┤
`, truncate(filepath.Base(m.file), 45), m.state)
}

func (m Model) renderStreamInfo() string {
	if m.sampleRate == 0 {
		return "│ No stream                                            │\n"
	}

	format := fmt.Sprintf("%dHz %d-bit mono, %s backend", m.sampleRate, m.sampleWidth, m.backend)
	pos := fmt.Sprintf("%d / %d frames", m.frames, m.totalFrames)
	return fmt.Sprintf("│ Format: %-45s │\n│ Played: %-45s │\n", format, pos)
}

func (m Model) renderControls() string {
	s := fmt.Sprintf("│ Volume: [%s] %2d/%d%-25s │\n",
		renderBar(m.volume, audio.MaxVolume, audio.MaxVolume), m.volume, audio.MaxVolume, "")
	if m.lastErr != "" {
		s += fmt.Sprintf("│ Error:  %-45s │\n", truncate(m.lastErr, 45))
	}
	return s
}

func (m Model) renderDebug() string {
	return fmt.Sprintf(`│ DEBUG:                                               │
│   Session: %-42s │
│   Outcome: %-42s │
│   Divisor: %-42d │
`, m.session, m.outcome, audio.Divisor(m.volume))
}

func (m Model) renderHelp() string {
	return `│ ↑/↓:Volume  space:Play/Stop  d:Debug  q:Quit         │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.controls != nil {
			select {
			case m.controls.Quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	case "up", "+":
		if m.volume < audio.MaxVolume {
			m.volume++
		}
		m.send(ActionVolumeUp)
	case "down", "-":
		if m.volume > audio.MinVolume {
			m.volume--
		}
		m.send(ActionVolumeDown)
	case " ", "space", "p":
		if m.state == player.StatePlaying {
			m.send(ActionStop)
		} else {
			m.send(ActionPlay)
		}
	case "s":
		m.send(ActionStop)
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// send forwards an action without blocking the UI
func (m Model) send(a Action) {
	if m.controls == nil {
		return
	}
	select {
	case m.controls.Actions <- a:
	default:
	}
}

// applyStatus updates model from a player snapshot
func (m *Model) applyStatus(st player.Status) {
	m.state = st.State
	m.volume = st.Volume
	m.backend = st.Backend
	m.sampleRate = st.Stream.SampleRateHz
	m.sampleWidth = st.Stream.SampleWidthBits
	m.totalFrames = st.Stream.TotalFrames
	m.frames = st.Frames
	m.session = st.Session
	if st.Last.Outcome != player.OutcomeNone {
		m.outcome = st.Last.Outcome.String()
	}
	m.lastErr = ""
	if st.Err != nil {
		m.lastErr = st.Err.Error()
	}
}

// Utility functions
func renderBar(value, max, width int) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	filled := (value * width) / max
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}
	return b.String()
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
