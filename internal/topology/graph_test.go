package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/probe"
)

// mapSource is a trivial StatusSource for tests.
type mapSource map[string]probe.Result

func (m mapSource) Status(ip string) (probe.Result, bool) {
	r, ok := m[ip]
	return r, ok
}

func fleet() []config.Host {
	return []config.Host{
		{Name: "hypervisor.lan", IP: "10.0.0.1", OSType: config.OSESXi},
		{Name: "vm-a.lan", IP: "10.0.0.2", ParentIP: "10.0.0.1"},
		{Name: "vm-b.lan", IP: "10.0.0.3", ParentIP: "10.0.0.1"},
		{Name: "vm-c.lan", IP: "10.0.0.4", ParentIP: "10.0.0.1"},
		{Name: "standalone.lan", IP: "10.0.0.5"},
	}
}

func TestBuild(t *testing.T) {
	g := Build(fleet())

	assert.Equal(t, []string{"10.0.0.2", "10.0.0.3", "10.0.0.4"}, g.Children("10.0.0.1"))
	assert.Empty(t, g.Children("10.0.0.5"))

	parent, ok := g.Parent("10.0.0.2")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", parent)

	_, ok = g.Parent("10.0.0.5")
	assert.False(t, ok)

	assert.Equal(t, []string{"10.0.0.1"}, g.Parents())
	assert.Empty(t, g.UnknownParents())
}

func TestBuildUnknownParent(t *testing.T) {
	hosts := []config.Host{
		{Name: "orphan.lan", IP: "10.0.0.9", ParentIP: "10.0.0.99"},
	}
	g := Build(hosts)

	// Flagged, and the host is treated as a root.
	assert.Equal(t, map[string]string{"10.0.0.9": "10.0.0.99"}, g.UnknownParents())
	_, ok := g.Parent("10.0.0.9")
	assert.False(t, ok)
	assert.Empty(t, g.Parents())
}

func TestRollupStates(t *testing.T) {
	g := Build(fleet())

	tests := []struct {
		name      string
		src       mapSource
		wantUp    int
		wantState HealthState
	}{
		{
			name: "all children up",
			src: mapSource{
				"10.0.0.2": {Online: true},
				"10.0.0.3": {Online: true},
				"10.0.0.4": {Online: true},
			},
			wantUp:    3,
			wantState: StateHealthy,
		},
		{
			name: "two of three up",
			src: mapSource{
				"10.0.0.2": {Online: true},
				"10.0.0.3": {Online: true},
				"10.0.0.4": {Online: false},
			},
			wantUp:    2,
			wantState: StateDegraded,
		},
		{
			name: "none up",
			src: mapSource{
				"10.0.0.2": {Online: false},
			},
			wantUp:    0,
			wantState: StateDown,
		},
		{
			name:      "no results yet counts as down",
			src:       mapSource{},
			wantUp:    0,
			wantState: StateDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := g.Rollup("10.0.0.1", tt.src)
			assert.Equal(t, tt.wantUp, r.Up)
			assert.Equal(t, 3, r.Total)
			assert.Equal(t, tt.wantState, r.State)
		})
	}
}

func TestRollupNoChildren(t *testing.T) {
	g := Build(fleet())

	r := g.Rollup("10.0.0.5", mapSource{})
	assert.Equal(t, 0, r.Total)
	assert.Equal(t, StateEmpty, r.State)
}

func TestParentOffline(t *testing.T) {
	g := Build(fleet())

	src := mapSource{
		"10.0.0.1": {Online: false},
		"10.0.0.2": {Online: true, Ping: true, SSH: true},
	}

	assert.True(t, g.ParentOffline("10.0.0.2", src))
	assert.False(t, g.ParentOffline("10.0.0.5", src), "roots have no parent to be offline")

	// The cascade is a read-side projection: the child's own result is
	// untouched and still reports online.
	child, ok := src.Status("10.0.0.2")
	require.True(t, ok)
	assert.True(t, child.Online)
}

func TestParentOfflineNoParentResult(t *testing.T) {
	g := Build(fleet())

	// Parent has no result yet: no cascade.
	assert.False(t, g.ParentOffline("10.0.0.2", mapSource{}))
}

func TestHealthStateString(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "down", StateDown.String())
	assert.Equal(t, "degraded", StateDegraded.String())
	assert.Equal(t, "healthy", StateHealthy.String())
}
