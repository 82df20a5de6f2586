// Package ui renders fleet status for the terminal. Percentages are
// carried as floats everywhere else and rounded to one decimal only here,
// at display time.
package ui

import (
	"fmt"
	"strings"

	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/probe"
	"github.com/cobaltax/fleetwatch/internal/resources"
	"github.com/cobaltax/fleetwatch/internal/topology"
)

// Status markers
const (
	markOnline  = "●"
	markOffline = "✗"
	markParent  = "◌"
)

// HostLine renders one host's status line. parentOffline applies the
// read-only cascade override; the result itself is displayed unmodified
// otherwise.
func HostLine(h config.Host, result probe.Result, parentOffline bool) string {
	var b strings.Builder

	switch {
	case parentOffline:
		b.WriteString(StyleMuted.Render(markParent))
		b.WriteString(fmt.Sprintf(" %-30s %-15s ", h.Name, h.IP))
		b.WriteString(StyleMuted.Render("parent offline"))
		return b.String()
	case result.Online:
		b.WriteString(StyleOnline.Render(markOnline))
	default:
		b.WriteString(StyleOffline.Render(markOffline))
	}

	b.WriteString(fmt.Sprintf(" %-30s %-15s ", h.Name, h.IP))

	if !result.Online {
		b.WriteString(StyleOffline.Render("offline"))
		return b.String()
	}

	if result.Resources != nil {
		b.WriteString(Snapshot(result.Resources))
	} else if result.ResourceErr != "" {
		b.WriteString(StyleMuted.Render(truncate(result.ResourceErr, 60)))
	}

	return b.String()
}

// Snapshot renders a one-line resource summary.
func Snapshot(s *resources.Snapshot) string {
	return fmt.Sprintf("CPU %.1f%%  Mem %.1f%% (%.1f/%.1fGB)  Disk %.1f%% (%s/%s)  Up %s",
		s.CPUUsagePct,
		s.MemoryUsagePct, s.MemoryUsedGB, s.MemoryTotalGB,
		s.DiskUsagePct, s.DiskUsed, s.DiskTotal,
		s.Uptime)
}

// RollupSuffix renders a parent's children summary, e.g. " (2/3)".
func RollupSuffix(r topology.Rollup) string {
	if r.Total == 0 {
		return ""
	}

	text := fmt.Sprintf(" (%d/%d)", r.Up, r.Total)
	switch r.State {
	case topology.StateHealthy:
		return StyleOnline.Render(text)
	case topology.StateDown:
		return StyleOffline.Render(text)
	default:
		return StyleDegraded.Render(text)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
