package audio

import "fmt"

// FormatError reports a container that is not a supported mono PCM file
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsupported audio file %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("unsupported audio file %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError creates a FormatError for path
func NewFormatError(path, reason string, err error) *FormatError {
	return &FormatError{Path: path, Reason: reason, Err: err}
}
