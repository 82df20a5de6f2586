package config

import (
	"os"
	"time"
)

// OSType identifies the remote operating system family of a host.
// It selects the resource-collection and restart strategies.
type OSType string

const (
	OSLinux   OSType = "linux"
	OSWindows OSType = "windows"
	OSESXi    OSType = "esxi"
)

// Valid reports whether the OS type is one of the supported families.
func (t OSType) Valid() bool {
	switch t {
	case OSLinux, OSWindows, OSESXi:
		return true
	}
	return false
}

// Host defines a monitored machine and its connection settings.
// The engine holds a read-only snapshot of these records per refresh cycle.
type Host struct {
	// Name is the display name (typically the FQDN).
	Name string `yaml:"name" mapstructure:"name"`

	// IP is the unique key for the host within the fleet.
	IP string `yaml:"ip" mapstructure:"ip"`

	// SSHUser is the account used for remote sessions.
	SSHUser string `yaml:"ssh_user" mapstructure:"ssh_user"`

	// SSHPasswordEnv names the environment variable holding the SSH
	// password. Passwords are never stored in the config file itself.
	SSHPasswordEnv string `yaml:"ssh_password_env,omitempty" mapstructure:"ssh_password_env"`

	// SSHKeyPath points at a private key file. Takes precedence over
	// the password when both are set.
	SSHKeyPath string `yaml:"ssh_key_path,omitempty" mapstructure:"ssh_key_path"`

	// SSHPort defaults to 22.
	SSHPort int `yaml:"ssh_port,omitempty" mapstructure:"ssh_port"`

	// OSType is one of linux, windows, esxi.
	OSType OSType `yaml:"os_type" mapstructure:"os_type"`

	// ParentIP declares a dependency on another host (e.g., the ESXi
	// box a VM runs on). Optional.
	ParentIP string `yaml:"parent_ip,omitempty" mapstructure:"parent_ip"`
}

// Password resolves the SSH password from the configured environment
// variable. Returns empty when no variable is configured or it is unset.
func (h Host) Password() string {
	if h.SSHPasswordEnv == "" {
		return ""
	}
	return os.Getenv(h.SSHPasswordEnv)
}

// Port returns the SSH port, applying the default.
func (h Host) Port() int {
	if h.SSHPort == 0 {
		return 22
	}
	return h.SSHPort
}

// Config represents the complete fleetwatch.yaml configuration file.
type Config struct {
	Hosts []Host `yaml:"hosts" mapstructure:"hosts"`

	// PingTimeout bounds one ICMP echo attempt.
	PingTimeout time.Duration `yaml:"ping_timeout" mapstructure:"ping_timeout"`

	// SSHTimeout bounds the SSH connect of one remote session.
	SSHTimeout time.Duration `yaml:"ssh_timeout" mapstructure:"ssh_timeout"`

	// CommandTimeout bounds one remote command execution.
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`

	// RefreshInterval is the period used by status --watch.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	// MaxConcurrent caps in-flight probes during a refresh cycle.
	// Zero means one worker per host with no ceiling.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`

	// AuditFile is where restart/test events are appended as JSON lines.
	AuditFile string `yaml:"audit_file" mapstructure:"audit_file"`
}

// HostByIP returns the host record with the given IP, if present.
func (c *Config) HostByIP(ip string) (Host, bool) {
	for _, h := range c.Hosts {
		if h.IP == ip {
			return h, true
		}
	}
	return Host{}, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Hosts:           nil,
		PingTimeout:     3 * time.Second,
		SSHTimeout:      10 * time.Second,
		CommandTimeout:  10 * time.Second,
		RefreshInterval: 30 * time.Second,
		MaxConcurrent:   32,
		AuditFile:       "audit.log",
	}
}
