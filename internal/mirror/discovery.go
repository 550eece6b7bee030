package mirror

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/muurk/maptools/internal/version"
)

const (
	// ServiceType is the mDNS service type mirrors register under
	ServiceType = "_maptools._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// DefaultBrowseTimeout is how long Browse listens when no timeout is given
	DefaultBrowseTimeout = 5 * time.Second
)

func appVersion() string {
	return version.Version
}

// Session is a mirror found on the network.
type Session struct {
	Name     string
	Hostname string
	IP       string
	Port     int

	// Metadata holds the TXT record: id, path, map and version.
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a one-line description of the session.
func (s *Session) String() string {
	desc := fmt.Sprintf("%s at %s", s.Name, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
	if m := s.Metadata["map"]; m != "" {
		desc += " (map " + m + ")"
	}
	return desc
}

// URL returns the WebSocket URL to watch the session.
func (s *Session) URL() string {
	path := s.Metadata["path"]
	if path == "" {
		path = Path
	}
	return "ws://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port)) + path
}

// Browse lists the mirrors that answer within timeout.
func Browse(ctx context.Context, timeout time.Duration) ([]*Session, error) {
	if timeout <= 0 {
		timeout = DefaultBrowseTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu       sync.Mutex
		sessions = make(map[string]*Session)
	)
	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for entry := range entries {
			s := parseServiceEntry(entry)
			if s == nil {
				continue
			}
			mu.Lock()
			sessions[s.Metadata["id"]+s.Name] = s
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	found := make([]*Session, 0, len(sessions))
	for _, s := range sessions {
		found = append(found, s)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// parseServiceEntry converts a zeroconf entry to a Session, or nil when the
// entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Session {
	if entry == nil || entry.Port == 0 {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		k, v, _ := strings.Cut(txt, "=")
		metadata[k] = v
	}

	return &Session{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
