// Package resources extracts CPU, memory, disk, and uptime metrics from a
// remote session. Each OS family has its own strategy; ESXi shares the
// POSIX one. Every metric is parsed defensively: a bad field becomes a
// zero/unknown default, the rest of the snapshot survives.
package resources

import (
	"strings"
	"time"

	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/errors"
	"github.com/cobaltax/fleetwatch/pkg/sshutil"
)

// strategy collects a snapshot over an open session. Implementations
// report how many of their commands produced usable output so the
// collector can distinguish a degraded snapshot from a dead session.
type strategy interface {
	collect(s sshutil.Session, timeout time.Duration) (*Snapshot, int)
}

// Collector routes collection to the strategy for the host's OS family.
type Collector struct {
	strategies map[config.OSType]strategy
}

// NewCollector builds a collector with the built-in strategies.
func NewCollector() *Collector {
	posix := &posixStrategy{}
	return &Collector{
		strategies: map[config.OSType]strategy{
			config.OSLinux:   posix,
			config.OSESXi:    posix, // ESXi's busybox shell speaks enough POSIX
			config.OSWindows: &windowsStrategy{},
		},
	}
}

// Collect gathers a snapshot for the given OS family. It returns an error
// only when no metric command produced output at all (dead session); any
// partial result comes back as a degraded snapshot.
func (c *Collector) Collect(s sshutil.Session, osType config.OSType, timeout time.Duration) (*Snapshot, error) {
	strat, ok := c.strategies[osType]
	if !ok {
		strat = c.strategies[config.OSLinux]
	}

	snapshot, collected := strat.collect(s, timeout)
	if collected == 0 {
		return nil, errors.New(errors.ErrExec,
			"Failed to get system resources from "+s.GetHost(),
			"The session connected but no metric command returned output.")
	}

	return snapshot, nil
}

// runTrimmed executes a command and returns its stdout with surrounding
// whitespace removed, plus whether anything usable came back.
func runTrimmed(s sshutil.Session, cmd string, timeout time.Duration) (string, bool) {
	result, err := s.Run(cmd, timeout)
	if err != nil || result.ExitStatus != 0 {
		return "", false
	}
	out := strings.TrimSpace(string(result.Stdout))
	return out, out != ""
}
