// Package probe implements reachability checks: one ICMP echo via the
// platform ping binary, one bounded TCP connect, and the aggregate
// per-host status used by the refresh cycle.
package probe

import (
	"context"
	"net"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/logger"
	"github.com/cobaltax/fleetwatch/internal/resources"
	"github.com/cobaltax/fleetwatch/pkg/sshutil"
)

// spawnGrace is added on top of the ping timeout to cover process startup,
// so a slow fork never gets misread as an unreachable host.
const spawnGrace = 2 * time.Second

// DialFunc opens an authenticated session to a host. Swappable in tests.
type DialFunc func(h config.Host, timeout time.Duration) (sshutil.Session, error)

// Result is the per-host outcome of one probe.
// Invariant: Online == Ping || SSH.
type Result struct {
	Online    bool
	Ping      bool
	SSH       bool
	LastCheck time.Time

	// Resources is populated only when ping succeeded and a remote
	// session was attempted. On session or collection failure,
	// ResourceErr carries the transport's error text verbatim.
	Resources   *resources.Snapshot
	ResourceErr string
}

// Engine performs reachability and deep probes against single hosts.
type Engine struct {
	PingTimeout    time.Duration
	SSHTimeout     time.Duration
	CommandTimeout time.Duration

	Dial      DialFunc
	Collector *resources.Collector

	// Pinger overrides the platform ping binary. Swappable in tests.
	Pinger func(ip string) bool

	Log logger.Logger
}

// NewEngine builds a probe engine with the configured timeouts and the
// real SSH dialer.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		PingTimeout:    cfg.PingTimeout,
		SSHTimeout:     cfg.SSHTimeout,
		CommandTimeout: cfg.CommandTimeout,
		Dial: func(h config.Host, timeout time.Duration) (sshutil.Session, error) {
			return sshutil.DialHost(h, timeout)
		},
		Collector: resources.NewCollector(),
		Log:       logger.NewEnvLogger("[probe]"),
	}
}

// Ping issues one ICMP echo with a bounded wait. Any timeout, unreachable,
// or permission error collapses to false; it never returns an error.
func (e *Engine) Ping(ip string) bool {
	if e.Pinger != nil {
		return e.Pinger(ip)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.PingTimeout+spawnGrace)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		ms := int(e.PingTimeout.Milliseconds())
		if ms < 1 {
			ms = 1000
		}
		cmd = exec.CommandContext(ctx, "ping", "-n", "1", "-w", strconv.Itoa(ms), ip)
	} else {
		secs := int(e.PingTimeout.Seconds())
		if secs < 1 {
			secs = 1
		}
		cmd = exec.CommandContext(ctx, "ping", "-c", "1", "-W", strconv.Itoa(secs), ip)
	}

	return cmd.Run() == nil
}

// CheckPort makes one bounded TCP connect attempt. Any socket error
// collapses to false.
func (e *Engine) CheckPort(ip string, port int) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(ip, strconv.Itoa(port)), e.PingTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Status aggregates reachability and, when possible, a resource snapshot
// for one host. Ping runs first; if it fails the host is reported offline
// immediately and no remote session is attempted.
func (e *Engine) Status(h config.Host) Result {
	result := Result{LastCheck: time.Now().UTC()}

	result.Ping = e.Ping(h.IP)
	if !result.Ping {
		e.Log.Debug("%s: no ping response", h.IP)
		return result
	}

	session, err := e.Dial(h, e.SSHTimeout)
	if err != nil {
		// Surface the transport's text verbatim for diagnosis.
		result.ResourceErr = "SSH: " + err.Error()
		result.Online = result.Ping
		return result
	}
	defer session.Close()

	result.SSH = true
	result.Online = true

	snapshot, err := e.Collector.Collect(session, h.OSType, e.CommandTimeout)
	if err != nil {
		result.ResourceErr = err.Error()
		return result
	}
	result.Resources = snapshot

	return result
}
