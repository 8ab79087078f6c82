// ABOUTME: Command-line remote for pcmstream players
// ABOUTME: Sends one control command over websocket, optionally discovering players via mDNS
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Resonate-Protocol/pcmstream/internal/discovery"
	"github.com/Resonate-Protocol/pcmstream/internal/remote"
)

var (
	url      = flag.String("url", "ws://localhost:8930/control", "Player control endpoint")
	discover = flag.Bool("discover", false, "Find a player via mDNS instead of -url")
	timeout  = flag.Duration("timeout", 5*time.Second, "Discovery and reply timeout")
	level    = flag.Int("level", -1, "Volume level for set_volume")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pcmctl [flags] <play|stop|volume_up|volume_down|set_volume|status>\n\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	var payload interface{}
	switch command {
	case remote.TypePlay, remote.TypeStop, remote.TypeVolumeUp, remote.TypeVolumeDown, remote.TypeStatus:
	case remote.TypeSetVolume:
		if *level < 0 {
			log.Fatalf("set_volume requires -level")
		}
		payload = remote.SetVolume{Level: *level}
	default:
		log.Fatalf("unknown command %q", command)
	}

	endpoint := *url
	if *discover {
		ep, err := findPlayer(*timeout)
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
		log.Printf("Using %s at %s", ep.Name, ep.URL())
		endpoint = ep.URL()
	}

	client, err := remote.Dial(endpoint, *timeout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer client.Close()

	st, err := client.Do(command, payload)
	if err != nil {
		log.Fatalf("Command failed: %v", err)
	}

	fmt.Printf("%s: %s, volume %d, %s backend\n", st.Player, st.State, st.Volume, st.Backend)
	if st.SampleRate > 0 {
		fmt.Printf("  %dHz %d-bit, %d/%d frames\n", st.SampleRate, st.SampleWidth, st.Frames, st.TotalFrames)
	}
	if st.Outcome != "" {
		fmt.Printf("  last session: %s\n", st.Outcome)
	}
	if st.Error != "" {
		fmt.Printf("  error: %s\n", st.Error)
	}
}

// findPlayer returns the first player that answers an mDNS query
func findPlayer(timeout time.Duration) (*discovery.Endpoint, error) {
	disc := discovery.NewManager(discovery.Config{BrowseTimeout: timeout})
	defer disc.Stop()

	if err := disc.Browse(); err != nil {
		return nil, err
	}

	select {
	case ep := <-disc.Endpoints():
		return ep, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("no player found after %s", timeout)
	}
}
