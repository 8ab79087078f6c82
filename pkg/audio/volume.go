// ABOUTME: Fixed attenuation table for the streaming engine
// ABOUTME: Maps volume levels 0-12 to integer divisors
package audio

// Volume level bounds
const (
	MinVolume     = 0
	MaxVolume     = 12
	DefaultVolume = 10
)

// Volumes maps a volume level to its attenuation divisor. Level 0 is the
// quietest (largest divisor), level 12 passes samples through unscaled.
var Volumes = [MaxVolume + 1]int{49, 31, 21, 15, 11, 9, 7, 6, 5, 4, 3, 2, 1}

// ValidVolume reports whether level is inside the table
func ValidVolume(level int) bool {
	return level >= MinVolume && level <= MaxVolume
}

// ClampVolume limits level to [MinVolume, MaxVolume]
func ClampVolume(level int) int {
	if level < MinVolume {
		return MinVolume
	}
	if level > MaxVolume {
		return MaxVolume
	}
	return level
}

// Divisor returns the attenuation divisor for level, clamping out-of-range levels
func Divisor(level int) int {
	return Volumes[ClampVolume(level)]
}
