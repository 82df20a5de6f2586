package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cobaltax/fleetwatch/internal/config"
	"github.com/cobaltax/fleetwatch/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter fleetwatch.yaml in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand()
	},
}

// sampleConfig mirrors config.Config with durations as strings, so the
// generated YAML reads "3s" instead of raw nanoseconds.
type sampleConfig struct {
	Hosts           []config.Host `yaml:"hosts"`
	PingTimeout     string        `yaml:"ping_timeout"`
	SSHTimeout      string        `yaml:"ssh_timeout"`
	CommandTimeout  string        `yaml:"command_timeout"`
	RefreshInterval string        `yaml:"refresh_interval"`
	MaxConcurrent   int           `yaml:"max_concurrent"`
	AuditFile       string        `yaml:"audit_file"`
}

func initCommand() error {
	path := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Use --force to overwrite")
	}

	sample := sampleConfig{
		Hosts: []config.Host{
			{
				Name:           "hypervisor.lan",
				IP:             "192.168.1.10",
				SSHUser:        "root",
				SSHPasswordEnv: "HYPERVISOR_SSH_PASSWORD",
				OSType:         config.OSESXi,
			},
			{
				Name:       "app.lan",
				IP:         "192.168.1.20",
				SSHUser:    "admin",
				SSHKeyPath: "~/.ssh/id_ed25519",
				OSType:     config.OSLinux,
				ParentIP:   "192.168.1.10",
			},
		},
		PingTimeout:     "3s",
		SSHTimeout:      "10s",
		CommandTimeout:  "10s",
		RefreshInterval: "30s",
		MaxConcurrent:   32,
		AuditFile:       "audit.log",
	}

	data, err := yaml.Marshal(&sample)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render sample config",
			"This is a bug; please report it")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path,
			"Check directory permissions")
	}

	fmt.Printf("Created %s. Edit the host list, then run 'fleetwatch status'.\n", path)
	return nil
}
