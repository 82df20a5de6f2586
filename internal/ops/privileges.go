package ops

import (
	"strings"

	"github.com/cobaltax/fleetwatch/internal/config"
)

// TestSudo checks whether the host's account can elevate: first without a
// password, then by piping the configured one into sudo's prompt.
func (d *Dispatcher) TestSudo(h config.Host) Outcome {
	outcome := d.testSudo(h)

	d.Audit.Event("sudo_test", map[string]interface{}{
		"server":  h.Name,
		"ip":      h.IP,
		"success": outcome.Success,
		"message": outcome.Message,
	})

	return outcome
}

func (d *Dispatcher) testSudo(h config.Host) Outcome {
	session, err := d.Dial(h, d.SSHTimeout)
	if err != nil {
		return Outcome{Success: false, Message: "SSH connection failed: " + err.Error()}
	}
	defer session.Close()

	result, err := session.Run("sudo -n true", d.CommandTimeout)
	if err != nil {
		return Outcome{Success: false, Message: "Failed to test sudo access: " + err.Error()}
	}
	if result.ExitStatus == 0 {
		return Outcome{Success: true, Message: "User has passwordless sudo privileges"}
	}

	password := h.Password()
	if password != "" {
		result, err = session.Run("echo "+shellQuote(password)+" | sudo -S true", d.CommandTimeout)
		if err != nil {
			return Outcome{Success: false, Message: "Failed to test sudo access: " + err.Error()}
		}
		if result.ExitStatus == 0 {
			return Outcome{Success: true, Message: "User has sudo privileges (requires password)"}
		}
		return Outcome{Success: false, Message: "Sudo failed even with password: " + strings.TrimSpace(string(result.Stderr))}
	}

	stderr := strings.TrimSpace(string(result.Stderr))
	if strings.Contains(strings.ToLower(stderr), "password is required") {
		return Outcome{Success: false, Message: "User requires password for sudo (no password configured)"}
	}
	return Outcome{Success: false, Message: "User does not have sudo privileges: " + stderr}
}
