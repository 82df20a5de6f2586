// Package refresh fans out one probe worker per host, records results in
// a generation-tagged store, and keeps the dependency rollups current as
// results land.
package refresh

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cobaltax/fleetwatch/internal/audit"
	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/logger"
	"github.com/cobaltax/fleetwatch/internal/probe"
	"github.com/cobaltax/fleetwatch/internal/topology"
	"golang.org/x/sync/semaphore"
)

// Update is one streamed per-host outcome. Parent/Rollup are set when the
// host has a resolved parent whose rollup was recomputed after this write.
type Update struct {
	IP     string
	Result probe.Result

	Parent string
	Rollup *topology.Rollup
}

// Orchestrator coordinates concurrent refresh cycles over the fleet.
type Orchestrator struct {
	// Probe runs one host's probe sequence. Swappable in tests.
	Probe func(h config.Host) probe.Result

	// MaxConcurrent caps in-flight workers. Zero means unbounded,
	// one worker per host.
	MaxConcurrent int

	Store *Store
	Audit audit.Sink
	Log   logger.Logger

	gen atomic.Uint64

	mu      sync.Mutex
	rollups map[string]topology.Rollup
}

// NewOrchestrator builds an orchestrator around a probe engine.
func NewOrchestrator(engine *probe.Engine, cfg *config.Config, sink audit.Sink) *Orchestrator {
	if sink == nil {
		sink = audit.Noop()
	}
	return &Orchestrator{
		Probe:         engine.Status,
		MaxConcurrent: cfg.MaxConcurrent,
		Store:         NewStore(),
		Audit:         sink,
		Log:           logger.NewEnvLogger("[refresh]"),
		rollups:       make(map[string]topology.Rollup),
	}
}

// RefreshAll probes every host concurrently and streams per-host updates.
// The returned channel is closed exactly once, after all hosts' results
// (including the offline ones) have been written and a final full rollup
// recomputation has run. A running probe is never interrupted mid-cycle;
// each remote call is individually time-bounded instead. Overlapping
// invocations are safe: results are generation-tagged and stale writes
// are discarded.
func (o *Orchestrator) RefreshAll(hosts []config.Host, graph *topology.Graph) <-chan Update {
	gen := o.gen.Add(1)
	updates := make(chan Update, len(hosts))

	var sem *semaphore.Weighted
	if o.MaxConcurrent > 0 {
		sem = semaphore.NewWeighted(int64(o.MaxConcurrent))
	}

	var wg sync.WaitGroup
	for _, h := range hosts {
		wg.Add(1)
		go func(h config.Host) {
			defer wg.Done()

			if sem != nil {
				// Background context: a cycle is never cancelled,
				// it drains to its own bounded completion.
				_ = sem.Acquire(context.Background(), 1)
				defer sem.Release(1)
			}

			result := o.Probe(h)

			if !o.Store.Put(h.IP, result, gen) {
				o.Log.Debug("%s: discarding stale generation %d write", h.IP, gen)
				return
			}

			update := Update{IP: h.IP, Result: result}
			if parentIP, ok := graph.Parent(h.IP); ok {
				rollup := graph.Rollup(parentIP, o.Store)
				o.setRollup(parentIP, rollup)
				update.Parent = parentIP
				update.Rollup = &rollup
			}

			updates <- update
		}(h)
	}

	go func() {
		wg.Wait()
		// Final full recomputation so no parent header is left
		// reflecting a mid-batch partial state.
		for _, parentIP := range graph.Parents() {
			o.setRollup(parentIP, graph.Rollup(parentIP, o.Store))
		}
		o.Audit.Event("refresh_completed", map[string]interface{}{
			"hosts":      len(hosts),
			"generation": int64(gen),
		})
		close(updates)
	}()

	return updates
}

// Rollup returns the last computed rollup for a parent.
func (o *Orchestrator) Rollup(parentIP string) (topology.Rollup, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.rollups[parentIP]
	return r, ok
}

func (o *Orchestrator) setRollup(parentIP string, r topology.Rollup) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rollups[parentIP] = r
}
