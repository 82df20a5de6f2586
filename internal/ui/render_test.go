package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/probe"
	"github.com/cobaltax/fleetwatch/internal/resources"
	"github.com/cobaltax/fleetwatch/internal/topology"
)

func renderHost() config.Host {
	return config.Host{Name: "app.lan", IP: "192.168.1.20"}
}

func TestHostLineOffline(t *testing.T) {
	line := HostLine(renderHost(), probe.Result{}, false)

	assert.Contains(t, line, "app.lan")
	assert.Contains(t, line, "192.168.1.20")
	assert.Contains(t, line, "offline")
	assert.Contains(t, line, markOffline)
}

func TestHostLineOnlineWithResources(t *testing.T) {
	result := probe.Result{
		Online: true,
		Ping:   true,
		SSH:    true,
		Resources: &resources.Snapshot{
			CPUUsagePct:    12.345,
			MemoryUsagePct: 50.0,
			MemoryUsedGB:   4.04,
			MemoryTotalGB:  8.0,
			DiskUsagePct:   75.0,
			DiskUsed:       "75.0GB",
			DiskTotal:      "100.0GB",
			Uptime:         "up 3 days",
		},
	}

	line := HostLine(renderHost(), result, false)

	assert.Contains(t, line, markOnline)
	// Floats are rounded to one decimal at display time only.
	assert.Contains(t, line, "CPU 12.3%")
	assert.Contains(t, line, "Mem 50.0% (4.0/8.0GB)")
	assert.Contains(t, line, "Disk 75.0% (75.0GB/100.0GB)")
	assert.Contains(t, line, "up 3 days")
}

func TestHostLineOnlineWithResourceError(t *testing.T) {
	result := probe.Result{
		Online:      true,
		Ping:        true,
		ResourceErr: "SSH: dial tcp: connection refused",
	}

	line := HostLine(renderHost(), result, false)

	assert.Contains(t, line, markOnline)
	assert.Contains(t, line, "SSH: dial tcp")
}

func TestHostLineParentOfflineOverride(t *testing.T) {
	// Even an online child renders the cascade override.
	result := probe.Result{Online: true, Ping: true, SSH: true}

	line := HostLine(renderHost(), result, true)

	assert.Contains(t, line, markParent)
	assert.Contains(t, line, "parent offline")
	assert.NotContains(t, line, "CPU")
}

func TestSnapshotRounding(t *testing.T) {
	out := Snapshot(&resources.Snapshot{
		CPUUsagePct:    33.333333,
		MemoryUsagePct: 66.666666,
		MemoryUsedGB:   5.3333,
		MemoryTotalGB:  8.0,
		DiskUsed:       "10.0GB",
		DiskTotal:      "20.0GB",
		Uptime:         "up 1 hour",
	})

	assert.Contains(t, out, "CPU 33.3%")
	assert.Contains(t, out, "Mem 66.7%")
	assert.Contains(t, out, "5.3/8.0GB")
}

func TestRollupSuffix(t *testing.T) {
	tests := []struct {
		name string
		r    topology.Rollup
		want string
	}{
		{"healthy", topology.Rollup{Up: 3, Total: 3, State: topology.StateHealthy}, "(3/3)"},
		{"degraded", topology.Rollup{Up: 2, Total: 3, State: topology.StateDegraded}, "(2/3)"},
		{"down", topology.Rollup{Up: 0, Total: 3, State: topology.StateDown}, "(0/3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, RollupSuffix(tt.r), tt.want)
		})
	}

	assert.Empty(t, RollupSuffix(topology.Rollup{State: topology.StateEmpty}), "no suffix for childless hosts")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := "this is a very long error message that keeps going"
	out := truncate(long, 20)
	assert.LessOrEqual(t, len([]rune(out)), 20)
	assert.Contains(t, out, "…")
}
