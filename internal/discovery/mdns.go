// ABOUTME: mDNS service discovery for pcmstream control endpoints
// ABOUTME: Advertises a player's websocket endpoint and browses for others
package discovery

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the DNS-SD type of a player control endpoint
const ServiceType = "_pcmstream._tcp"

// Config holds discovery configuration
type Config struct {
	ServiceName string
	Port        int

	// Path is the websocket path advertised in the TXT record
	Path string

	// Version is advertised in the TXT record
	Version string

	// BrowseTimeout bounds one query round (default: 3s)
	BrowseTimeout time.Duration
}

// Manager handles mDNS operations
type Manager struct {
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	endpoints chan *Endpoint
}

// Endpoint describes a discovered player
type Endpoint struct {
	Name string
	Host string
	Port int
	Path string
}

// URL returns the websocket URL of the endpoint
func (e *Endpoint) URL() string {
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(e.Host, fmt.Sprint(e.Port)), e.Path)
}

// NewManager creates a discovery manager
func NewManager(config Config) *Manager {
	if config.Path == "" {
		config.Path = "/control"
	}
	if config.BrowseTimeout == 0 {
		config.BrowseTimeout = 3 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		config:    config,
		ctx:       ctx,
		cancel:    cancel,
		endpoints: make(chan *Endpoint, 10),
	}
}

// txtRecords builds the TXT record for the advertised service
func (m *Manager) txtRecords() []string {
	txt := []string{"path=" + m.config.Path}
	if m.config.Version != "" {
		txt = append(txt, "version="+m.config.Version)
	}
	return txt
}

// Advertise advertises this player via mDNS until Stop
func (m *Manager) Advertise() error {
	ips, err := getLocalIPs()
	if err != nil {
		return fmt.Errorf("failed to get local IPs: %w", err)
	}

	service, err := mdns.NewMDNSService(
		m.config.ServiceName,
		ServiceType,
		"",
		"",
		m.config.Port,
		ips,
		m.txtRecords(),
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("failed to create mdns server: %w", err)
	}

	log.Printf("Advertising mDNS service: %s on port %d (type: %s)", m.config.ServiceName, m.config.Port, ServiceType)

	go func() {
		<-m.ctx.Done()
		server.Shutdown()
	}()

	return nil
}

// Browse searches for players until Stop
func (m *Manager) Browse() error {
	go m.browseLoop()
	return nil
}

func (m *Manager) browseLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		entries := make(chan *mdns.ServiceEntry, 10)

		go func() {
			for entry := range entries {
				ep := endpointFromEntry(entry)
				if ep == nil {
					continue
				}

				log.Printf("Discovered player: %s at %s:%d", ep.Name, ep.Host, ep.Port)

				select {
				case m.endpoints <- ep:
				case <-m.ctx.Done():
					return
				}
			}
		}()

		params := &mdns.QueryParam{
			Service: ServiceType,
			Domain:  "local",
			Timeout: m.config.BrowseTimeout,
			Entries: entries,
		}

		if err := mdns.Query(params); err != nil {
			log.Printf("mDNS query failed: %v", err)
		}
		close(entries)
	}
}

// endpointFromEntry converts a service entry, skipping entries without IPv4
func endpointFromEntry(entry *mdns.ServiceEntry) *Endpoint {
	if entry == nil || entry.AddrV4 == nil {
		return nil
	}

	ep := &Endpoint{
		Name: strings.TrimSuffix(entry.Name, "."+ServiceType+".local."),
		Host: entry.AddrV4.String(),
		Port: entry.Port,
		Path: "/control",
	}
	for _, field := range entry.InfoFields {
		if path, ok := strings.CutPrefix(field, "path="); ok && path != "" {
			ep.Path = path
		}
	}
	return ep
}

// Endpoints returns the channel of discovered players
func (m *Manager) Endpoints() <-chan *Endpoint {
	return m.endpoints
}

// Stop stops advertising and browsing
func (m *Manager) Stop() {
	m.cancel()
}

// getLocalIPs returns local IPv4 addresses
func getLocalIPs() ([]net.IP, error) {
	var ips []net.IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					ips = append(ips, ipnet.IP)
				}
			}
		}
	}

	return ips, nil
}
