// ABOUTME: Tests for mDNS discovery
// ABOUTME: Tests manager defaults and service entry conversion
package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/hashicorp/mdns"
)

func TestNewManagerDefaults(t *testing.T) {
	mgr := NewManager(Config{ServiceName: "Test Player", Port: 8930})
	if mgr == nil {
		t.Fatal("expected manager to be created")
	}
	defer mgr.Stop()

	if mgr.config.Path != "/control" {
		t.Errorf("expected default path /control, got %s", mgr.config.Path)
	}
	if mgr.config.BrowseTimeout != 3*time.Second {
		t.Errorf("expected 3s browse timeout, got %v", mgr.config.BrowseTimeout)
	}
	if mgr.Endpoints() == nil {
		t.Error("expected endpoints channel")
	}
}

func TestTXTRecords(t *testing.T) {
	mgr := NewManager(Config{ServiceName: "p", Path: "/ws", Version: "1.2.3"})
	defer mgr.Stop()

	txt := mgr.txtRecords()
	if len(txt) != 2 || txt[0] != "path=/ws" || txt[1] != "version=1.2.3" {
		t.Errorf("unexpected TXT records %v", txt)
	}
}

func TestEndpointFromEntry(t *testing.T) {
	entry := &mdns.ServiceEntry{
		Name:       "kitchen." + ServiceType + ".local.",
		AddrV4:     net.ParseIP("192.168.1.20"),
		Port:       8930,
		InfoFields: []string{"path=/remote", "version=0.1.0"},
	}

	ep := endpointFromEntry(entry)
	if ep == nil {
		t.Fatal("expected endpoint")
	}
	if ep.Name != "kitchen" {
		t.Errorf("expected name kitchen, got %q", ep.Name)
	}
	if ep.URL() != "ws://192.168.1.20:8930/remote" {
		t.Errorf("unexpected URL %s", ep.URL())
	}

	if endpointFromEntry(&mdns.ServiceEntry{Name: "v6only"}) != nil {
		t.Error("expected entry without IPv4 to be skipped")
	}
}
