// Package ops implements on-demand remote operations against single
// hosts: the restart fallback-chain protocol, the sudo privilege test,
// and the system-info query. Every operation opens its own session and
// closes it on every exit path.
package ops

import (
	"fmt"
	"strings"
	"time"

	"github.com/cobaltax/fleetwatch/internal/audit"
	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/logger"
	"github.com/cobaltax/fleetwatch/pkg/sshutil"
)

// DialFunc opens an authenticated session to a host. Swappable in tests.
type DialFunc func(h config.Host, timeout time.Duration) (sshutil.Session, error)

// Outcome reports a remote operation: a success flag plus a
// human-readable diagnostic or acceptance reason.
type Outcome struct {
	Success bool
	Message string
}

// restartStrategy walks one OS family's reboot command chain.
type restartStrategy interface {
	restart(s sshutil.Session, password string, timeout time.Duration) Outcome
}

// Dispatcher runs remote operations with bounded sessions and reports
// them to the audit sink.
type Dispatcher struct {
	SSHTimeout     time.Duration
	CommandTimeout time.Duration

	Dial  DialFunc
	Audit audit.Sink
	Log   logger.Logger

	strategies map[config.OSType]restartStrategy
}

// NewDispatcher builds a dispatcher with the configured timeouts, the
// real SSH dialer, and the built-in per-OS restart chains.
func NewDispatcher(cfg *config.Config, sink audit.Sink) *Dispatcher {
	if sink == nil {
		sink = audit.Noop()
	}
	linux := &linuxRestart{}
	return &Dispatcher{
		SSHTimeout:     cfg.SSHTimeout,
		CommandTimeout: cfg.CommandTimeout,
		Dial: func(h config.Host, timeout time.Duration) (sshutil.Session, error) {
			return sshutil.DialHost(h, timeout)
		},
		Audit: sink,
		Log:   logger.NewEnvLogger("[ops]"),
		strategies: map[config.OSType]restartStrategy{
			config.OSLinux:   linux,
			config.OSESXi:    linux, // same chain; ESXi accepts the POSIX commands
			config.OSWindows: &windowsRestart{},
		},
	}
}

// Restart walks the host's reboot fallback chain until one command is
// accepted. A connection drop during an attempt is the expected signature
// of a host that is actually rebooting and counts as acceptance.
func (d *Dispatcher) Restart(h config.Host) Outcome {
	outcome := d.restart(h)

	d.Audit.Event("restart_executed", map[string]interface{}{
		"server":  h.Name,
		"ip":      h.IP,
		"success": outcome.Success,
		"message": outcome.Message,
	})

	return outcome
}

func (d *Dispatcher) restart(h config.Host) Outcome {
	session, err := d.Dial(h, d.SSHTimeout)
	if err != nil {
		return Outcome{Success: false, Message: "SSH connection failed: " + err.Error()}
	}
	defer session.Close()

	strat, ok := d.strategies[h.OSType]
	if !ok {
		strat = d.strategies[config.OSLinux]
	}

	d.Log.Info("restarting %s (%s)", h.Name, h.IP)
	return strat.restart(session, h.Password(), d.CommandTimeout)
}

// accepted applies the acceptance rule to one attempt's error: a clean
// return or a connection drop is success; anything else advances the chain.
func accepted(cmd string, err error) (Outcome, bool) {
	if err == nil {
		return Outcome{Success: true, Message: "Restart command sent: " + cmd}, true
	}
	if sshutil.IsConnectionDrop(err) {
		return Outcome{Success: true, Message: fmt.Sprintf("Restart initiated (connection dropped): %s", cmd)}, true
	}
	return Outcome{}, false
}

// exhausted builds the aggregated diagnostic when no command was accepted.
func exhausted(osName string, attempts []string) Outcome {
	msg := fmt.Sprintf("All %s restart commands failed. Check privileges and host configuration.", osName)
	if len(attempts) > 0 {
		msg += " Attempts: " + strings.Join(attempts, "; ")
	}
	return Outcome{Success: false, Message: msg}
}

// shellQuote quotes a string for safe POSIX shell use.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
