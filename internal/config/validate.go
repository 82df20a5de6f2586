package config

import (
	"fmt"
	"net"

	"github.com/cobaltax/fleetwatch/internal/errors"
)

// Validate checks the configuration for problems that would make the
// engine misbehave. Unknown parent IPs are deliberately not fatal here;
// the topology index flags them and treats the host as a root.
func Validate(cfg *Config) error {
	if len(cfg.Hosts) == 0 {
		return errors.New(errors.ErrConfig,
			"No hosts configured",
			"Add at least one host entry to "+ConfigFileName)
	}

	seen := make(map[string]string, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		if h.IP == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Host %q has no ip", h.Name),
				"Every host needs a unique ip address")
		}
		if net.ParseIP(h.IP) == nil {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Host %q has invalid ip %q", h.Name, h.IP),
				"Use a literal IPv4 or IPv6 address")
		}
		if prev, dup := seen[h.IP]; dup {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Duplicate ip %s (hosts %q and %q)", h.IP, prev, h.Name),
				"The ip is the unique key for a host; give each host its own")
		}
		seen[h.IP] = h.Name

		if h.SSHUser == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Host %q has no ssh_user", h.Name),
				"Set ssh_user to the account used for remote sessions")
		}
		if !h.OSType.Valid() {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Host %q has unknown os_type %q", h.Name, h.OSType),
				"os_type must be one of: linux, windows, esxi")
		}
		if h.SSHPasswordEnv != "" && h.SSHKeyPath != "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Host %q sets both ssh_password_env and ssh_key_path", h.Name),
				"Pick one auth method per host; the key would always win")
		}
		if h.ParentIP == h.IP && h.ParentIP != "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Host %q declares itself as parent", h.Name),
				"Remove the parent_ip or point it at another host")
		}
	}

	return nil
}
