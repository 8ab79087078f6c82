// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for raw PCM sample decoders
package decode

// Decoder turns raw container bytes into integer samples
type Decoder interface {
	// Decode converts raw sample bytes to samples. The returned slice may be
	// reused by the next call.
	Decode(data []byte) ([]int32, error)

	// Close releases decoder resources
	Close() error
}
