package ops

import (
	"strings"

	"github.com/cobaltax/fleetwatch/internal/config"
)

// infoCommands is the basic identification bundle run by SystemInfo.
var infoCommands = []string{
	"uname -a",
	"uptime",
	"whoami",
	`sudo -n systemctl is-active systemd-logind 2>/dev/null || echo "no-systemd"`,
}

// SystemInfo gathers a quick identification report from the host, one
// "command: output" line per command that produced output.
func (d *Dispatcher) SystemInfo(h config.Host) Outcome {
	outcome := d.systemInfo(h)

	d.Audit.Event("ssh_test", map[string]interface{}{
		"server":  h.Name,
		"ip":      h.IP,
		"success": outcome.Success,
	})

	return outcome
}

func (d *Dispatcher) systemInfo(h config.Host) Outcome {
	session, err := d.Dial(h, d.SSHTimeout)
	if err != nil {
		return Outcome{Success: false, Message: "SSH connection failed: " + err.Error()}
	}
	defer session.Close()

	var lines []string
	for _, cmd := range infoCommands {
		result, err := session.Run(cmd, d.CommandTimeout)
		if err != nil {
			return Outcome{Success: false, Message: "Failed to get system info: " + err.Error()}
		}
		out := strings.TrimSpace(string(result.Stdout))
		if out != "" {
			lines = append(lines, cmd+": "+out)
		}
	}

	return Outcome{Success: true, Message: strings.Join(lines, "\n")}
}

// Execute runs an arbitrary command on the host with the configured
// bound, returning stdout and stderr.
func (d *Dispatcher) Execute(h config.Host, command string) (bool, string, string) {
	session, err := d.Dial(h, d.SSHTimeout)
	if err != nil {
		return false, "", "SSH connection failed: " + err.Error()
	}
	defer session.Close()

	result, err := session.Run(command, d.CommandTimeout)
	if err != nil {
		return false, "", "Command execution failed: " + err.Error()
	}

	return true, string(result.Stdout), string(result.Stderr)
}
