// ABOUTME: Backend error types
// ABOUTME: HardwareInitError wraps peripheral configuration failures
package backend

import "fmt"

// HardwareInitError reports a peripheral that could not be configured
type HardwareInitError struct {
	Backend string
	Reason  string
	Err     error
}

func (e *HardwareInitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s backend: %s: %v", e.Backend, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s backend: %s", e.Backend, e.Reason)
}

func (e *HardwareInitError) Unwrap() error {
	return e.Err
}
