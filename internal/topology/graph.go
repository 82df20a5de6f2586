// Package topology indexes the parent/child dependencies declared in the
// host set and computes health rollups and the parent-offline cascade.
// The index is a pure function of the host list: rebuild it whenever the
// configuration changes instead of mutating it in place.
package topology

import (
	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/probe"
)

// HealthState summarizes a parent's children.
type HealthState int

const (
	// StateEmpty: the parent has no declared children.
	StateEmpty HealthState = iota
	// StateDown: children exist and none is online.
	StateDown
	// StateDegraded: some children are online, some are not.
	StateDegraded
	// StateHealthy: every child is online.
	StateHealthy
)

// String returns a human-readable health state.
func (s HealthState) String() string {
	switch s {
	case StateDown:
		return "down"
	case StateDegraded:
		return "degraded"
	case StateHealthy:
		return "healthy"
	default:
		return "empty"
	}
}

// Rollup aggregates the latest known probe results of a parent's children.
type Rollup struct {
	Up    int
	Total int
	State HealthState
}

// StatusSource supplies the latest known probe result for a host, when one
// exists. The refresh result store implements it.
type StatusSource interface {
	Status(ip string) (probe.Result, bool)
}

// Graph is the parent/child index over one host set snapshot.
type Graph struct {
	children map[string][]string // parent ip -> child ips, host-list order
	parents  map[string]string   // child ip -> resolved parent ip
	unknown  map[string]string   // child ip -> declared parent ip that matches no host
}

// Build groups hosts by declared parent IP. A host with no parent is a
// root. A parent_ip matching no known host is flagged as a data
// inconsistency and treated as "no parent" for rollup purposes.
func Build(hosts []config.Host) *Graph {
	known := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		known[h.IP] = true
	}

	g := &Graph{
		children: make(map[string][]string),
		parents:  make(map[string]string),
		unknown:  make(map[string]string),
	}

	for _, h := range hosts {
		if h.ParentIP == "" {
			continue
		}
		if !known[h.ParentIP] {
			g.unknown[h.IP] = h.ParentIP
			continue
		}
		g.children[h.ParentIP] = append(g.children[h.ParentIP], h.IP)
		g.parents[h.IP] = h.ParentIP
	}

	return g
}

// Children returns the declared child IPs of a parent.
func (g *Graph) Children(parentIP string) []string {
	return g.children[parentIP]
}

// Parent returns the resolved parent of a child, if it has one.
func (g *Graph) Parent(childIP string) (string, bool) {
	p, ok := g.parents[childIP]
	return p, ok
}

// Parents returns every IP that has at least one declared child.
func (g *Graph) Parents() []string {
	out := make([]string, 0, len(g.children))
	for ip := range g.children {
		out = append(out, ip)
	}
	return out
}

// UnknownParents returns child ip -> declared parent ip for every
// parent_ip that matched no known host. Non-fatal, but worth surfacing.
func (g *Graph) UnknownParents() map[string]string {
	out := make(map[string]string, len(g.unknown))
	for k, v := range g.unknown {
		out[k] = v
	}
	return out
}

// Rollup computes (up, total, state) from the latest known probe results
// of the parent's declared children. Children with no result yet count
// toward total but not up.
func (g *Graph) Rollup(parentIP string, src StatusSource) Rollup {
	children := g.children[parentIP]
	r := Rollup{Total: len(children)}

	for _, ip := range children {
		if res, ok := src.Status(ip); ok && res.Online {
			r.Up++
		}
	}

	switch {
	case r.Total == 0:
		r.State = StateEmpty
	case r.Up == 0:
		r.State = StateDown
	case r.Up == r.Total:
		r.State = StateHealthy
	default:
		r.State = StateDegraded
	}

	return r
}

// ParentOffline reports whether the child's displayed status should be
// overridden with the distinct "parent offline" state. This is a
// read-side projection only: the child's own stored result is never
// touched and stays independently queryable.
func (g *Graph) ParentOffline(childIP string, src StatusSource) bool {
	parentIP, ok := g.parents[childIP]
	if !ok {
		return false
	}
	res, ok := src.Status(parentIP)
	return ok && !res.Online
}
