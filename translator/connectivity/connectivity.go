// Package connectivity models network reachability as an injected
// collaborator so sessions can fail fast while offline without consulting
// ambient global state.
package connectivity

import (
	"context"
	"net"
	"time"
)

// Checker reports whether the network is currently reachable.
type Checker interface {
	Online(ctx context.Context) bool
}

// Func adapts an ordinary function into a Checker.
type Func func(ctx context.Context) bool

func (f Func) Online(ctx context.Context) bool {
	return f(ctx)
}

// Static is a fixed connectivity answer, mainly for tests and environments
// where reachability is managed externally.
type Static bool

func (s Static) Online(context.Context) bool {
	return bool(s)
}

// Always reports the network as reachable.
var Always = Static(true)

// Probe checks reachability by opening a TCP connection to a well-known
// address. The zero value probes dns.google on port 443 with a one second
// timeout.
type Probe struct {
	Address string
	Timeout time.Duration
}

func (p *Probe) Online(ctx context.Context) bool {
	addr := p.Address
	if addr == "" {
		addr = "dns.google:443"
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
