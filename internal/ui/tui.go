// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and the channels back to the player
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a user request from the TUI
type Action int

const (
	ActionPlay Action = iota
	ActionStop
	ActionVolumeUp
	ActionVolumeDown
)

func (a Action) String() string {
	switch a {
	case ActionPlay:
		return "play"
	case ActionStop:
		return "stop"
	case ActionVolumeUp:
		return "volume_up"
	case ActionVolumeDown:
		return "volume_down"
	default:
		return "unknown"
	}
}

// Controls carries TUI requests to the application
type Controls struct {
	Actions chan Action
	Quit    chan struct{}
}

// NewControls creates the control channels
func NewControls() *Controls {
	return &Controls{
		Actions: make(chan Action, 10),
		Quit:    make(chan struct{}, 1),
	}
}

// Run creates the TUI program; the caller starts it with Run
func Run(file string, ctrl *Controls) *tea.Program {
	return tea.NewProgram(NewModel(file, ctrl), tea.WithAltScreen())
}
