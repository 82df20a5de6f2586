package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/probe"
	"github.com/cobaltax/fleetwatch/internal/refresh"
	"github.com/cobaltax/fleetwatch/internal/resources"
	"github.com/cobaltax/fleetwatch/internal/topology"
	"github.com/cobaltax/fleetwatch/internal/ui"
	"github.com/spf13/cobra"
)

var (
	statusJSON  bool
	statusWatch bool
)

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "refresh continuously at the configured interval")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe every host and show fleet health",
	Long: `Probes every configured host concurrently (ping, then SSH with a
resource snapshot) and prints one line per host. Parents show a
children rollup; children of an offline parent are shown as
"parent offline" without touching their own last result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand()
	},
}

// hostReport is the JSON output shape for one host.
type hostReport struct {
	Name          string              `json:"name"`
	IP            string              `json:"ip"`
	Online        bool                `json:"online"`
	Ping          bool                `json:"ping"`
	SSH           bool                `json:"ssh"`
	LastCheck     string              `json:"last_check,omitempty"`
	ParentOffline bool                `json:"parent_offline,omitempty"`
	Resources     *resources.Snapshot `json:"resources,omitempty"`
	Error         string              `json:"error,omitempty"`
	Children      *childrenReport     `json:"children,omitempty"`
}

type childrenReport struct {
	Up    int    `json:"up"`
	Total int    `json:"total"`
	State string `json:"state"`
}

func statusCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine := probe.NewEngine(cfg)
	orch := refresh.NewOrchestrator(engine, cfg, newAudit(cfg))
	graph := topology.Build(cfg.Hosts)

	for child, parent := range graph.UnknownParents() {
		fmt.Fprintf(os.Stderr, "warning: host %s declares unknown parent_ip %s\n", child, parent)
	}

	if !statusWatch {
		return runCycle(cfg, orch, graph)
	}

	for {
		if err := runCycle(cfg, orch, graph); err != nil {
			return err
		}
		time.Sleep(cfg.RefreshInterval)
		// Clear and home between cycles.
		fmt.Print("\033[2J\033[H")
	}
}

// runCycle drains one full refresh and renders the fleet.
func runCycle(cfg *config.Config, orch *refresh.Orchestrator, graph *topology.Graph) error {
	for range orch.RefreshAll(cfg.Hosts, graph) {
		// Drain to completion; rendering happens from the store so the
		// output is one consistent snapshot, not an arrival-order stream.
	}

	if statusJSON {
		return renderJSON(cfg, orch, graph)
	}
	renderText(cfg, orch, graph)
	return nil
}

func renderText(cfg *config.Config, orch *refresh.Orchestrator, graph *topology.Graph) {
	fmt.Println(ui.StyleHeader.Render("Fleet status"))

	for _, h := range cfg.Hosts {
		result, _ := orch.Store.Status(h.IP)
		line := ui.HostLine(h, result, graph.ParentOffline(h.IP, orch.Store))
		if rollup, ok := orch.Rollup(h.IP); ok {
			line += ui.RollupSuffix(rollup)
		}
		fmt.Println(line)
	}
}

func renderJSON(cfg *config.Config, orch *refresh.Orchestrator, graph *topology.Graph) error {
	reports := make([]hostReport, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		result, ok := orch.Store.Status(h.IP)
		report := hostReport{
			Name:          h.Name,
			IP:            h.IP,
			Online:        result.Online,
			Ping:          result.Ping,
			SSH:           result.SSH,
			ParentOffline: graph.ParentOffline(h.IP, orch.Store),
			Resources:     result.Resources,
			Error:         result.ResourceErr,
		}
		if ok {
			report.LastCheck = result.LastCheck.Format(time.RFC3339)
		}
		if rollup, found := orch.Rollup(h.IP); found {
			report.Children = &childrenReport{
				Up:    rollup.Up,
				Total: rollup.Total,
				State: rollup.State.String(),
			}
		}
		reports = append(reports, report)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{"hosts": reports})
}
