package ops

import (
	"fmt"
	"time"

	"github.com/cobaltax/fleetwatch/pkg/sshutil"
)

// linuxRestartChain is the ordered fallback chain, most specific first.
// Commands are stored without the sudo prefix; the strategy decides how
// to elevate each attempt.
var linuxRestartChain = []string{
	"systemctl reboot",
	"shutdown -r now",
	"reboot",
	"/sbin/reboot",
}

// sudoCheckTimeout bounds the passwordless-sudo probe; it either answers
// instantly or hangs on a password prompt.
const sudoCheckTimeout = 3 * time.Second

type linuxRestart struct{}

func (l *linuxRestart) restart(s sshutil.Session, password string, timeout time.Duration) Outcome {
	passwordless := hasPasswordlessSudo(s)

	var attempts []string
	for _, cmd := range linuxRestartChain {
		var full string
		switch {
		case passwordless:
			// Detached so the session need not survive the reboot.
			full = fmt.Sprintf("nohup sudo %s >/dev/null 2>&1 &", cmd)
		case password != "":
			// Pipe the password into sudo's prompt.
			full = fmt.Sprintf("echo %s | sudo -S %s >/dev/null 2>&1 &", shellQuote(password), cmd)
		default:
			// No elevation available; a blank password would just
			// burn the attempt.
			attempts = append(attempts, cmd+": skipped (sudo needs a password, none configured)")
			continue
		}

		err := s.Start(full)
		if outcome, ok := accepted(cmd, err); ok {
			return outcome
		}
		attempts = append(attempts, fmt.Sprintf("%s: %v", cmd, err))
	}

	return exhausted("Linux", attempts)
}

// hasPasswordlessSudo probes sudo -n; non-zero exit or any error means a
// password would be required.
func hasPasswordlessSudo(s sshutil.Session) bool {
	result, err := s.Run("sudo -n true", sudoCheckTimeout)
	return err == nil && result.ExitStatus == 0
}
