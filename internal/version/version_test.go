// ABOUTME: Tests for version constants
// ABOUTME: Checks the identity reported by the CLI, remote status and mDNS TXT records
package version

import (
	"regexp"
	"strings"
	"testing"
)

func TestIdentity(t *testing.T) {
	if Product != "pcmstream" {
		t.Errorf("expected product pcmstream, got %q", Product)
	}
	if Manufacturer == "" {
		t.Error("Manufacturer should not be empty")
	}
}

func TestVersionFormat(t *testing.T) {
	// Release builds inject a semantic version; local builds may say "dev"
	semver := regexp.MustCompile(`^v?\d+\.\d+\.\d+([-+].+)?$`)
	if Version != "dev" && !semver.MatchString(Version) {
		t.Errorf("unexpected version %q", Version)
	}
}

func TestVersionFitsTXTRecord(t *testing.T) {
	// DNS-SD TXT strings are limited to 255 bytes including the key
	if len("version="+Version) > 255 {
		t.Errorf("version %q too long for a TXT record", Version)
	}
}

func TestString(t *testing.T) {
	s := String()
	if s != Product+" "+Version {
		t.Errorf("unexpected version string %q", s)
	}
	if !strings.HasPrefix(s, Product) {
		t.Errorf("expected %q to start with the product name", s)
	}
}
