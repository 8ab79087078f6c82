// ABOUTME: Version information for pcmstream
// ABOUTME: Product identity reported by the CLI, remote status and mDNS
package version

// Version is overridden at build time with -ldflags "-X .../version.Version=..."
var Version = "0.1.0"

const (
	Product      = "pcmstream"
	Manufacturer = "Resonate"
)

// String returns the product and version
func String() string {
	return Product + " " + Version
}
