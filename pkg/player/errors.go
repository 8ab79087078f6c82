// ABOUTME: Player error values
// ABOUTME: Sentinel errors for lifecycle misuse
package player

import "errors"

var (
	// ErrNotReady is returned by Play and Stop before Begin succeeds
	ErrNotReady = errors.New("player not ready: call Begin first")

	// ErrAlreadyPlaying is returned by Play while a session is active
	ErrAlreadyPlaying = errors.New("playback already in progress")

	// ErrAlreadyOpen is returned by a second Begin
	ErrAlreadyOpen = errors.New("player already open")

	// ErrLoopRequiresConverter rejects loop mode on the pulse backend
	ErrLoopRequiresConverter = errors.New("loop mode requires the converter backend")
)
