// Package cli wires the fleetwatch commands together: status (refresh and
// render the fleet), restart, sudo, info, and init.
package cli

import (
	"fmt"
	"os"

	"github.com/cobaltax/fleetwatch/internal/audit"
	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/errors"
	"github.com/spf13/cobra"
)

var (
	configFlag string

	versionStr = "dev"
	commitStr  = "none"
	dateStr    = "unknown"
)

// SetVersionInfo records build-time version details for the version command.
func SetVersionInfo(version, commit, date string) {
	versionStr = version
	commitStr = commit
	dateStr = date
}

var rootCmd = &cobra.Command{
	Use:   "fleetwatch",
	Short: "Monitor and manage servers on your local network",
	Long: `fleetwatch probes a small fleet of Linux, Windows, and ESXi hosts:
ping and SSH reachability, live resource metrics, parent/child dependency
rollups, and best-effort remote restarts with per-OS fallback chains.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to fleetwatch.yaml")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(sudoCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fleetwatch %s (commit %s, built %s)\n", versionStr, commitStr, dateStr)
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig finds, loads, and validates the configuration.
func loadConfig() (*config.Config, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'fleetwatch init' to create "+config.ConfigFileName)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newAudit builds the audit logger for the configured file, attributing
// events to the invoking OS user.
func newAudit(cfg *config.Config) *audit.Logger {
	log := audit.New(cfg.AuditFile)
	if user := os.Getenv("USER"); user != "" {
		log.SetUser(user)
	}
	log.RotateIfNeeded(1_000_000, 3)
	return log
}

// hostByNameOrIP resolves a command's host argument.
func hostByNameOrIP(cfg *config.Config, arg string) (config.Host, error) {
	for _, h := range cfg.Hosts {
		if h.IP == arg || h.Name == arg {
			return h, nil
		}
	}
	return config.Host{}, errors.New(errors.ErrConfig,
		fmt.Sprintf("No host named %q", arg),
		"Use a host name or ip from "+config.ConfigFileName)
}
