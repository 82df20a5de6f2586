package ops

import (
	"fmt"
	"time"

	"github.com/cobaltax/fleetwatch/pkg/sshutil"
)

// windowsRestartChain is tried in order: immediate restart, a delayed one
// for shells that reject /t 0, then a scripted forced restart.
var windowsRestartChain = []string{
	"shutdown /r /t 0",
	"shutdown /r /t 5",
	`powershell -NoProfile -Command "Restart-Computer -Force"`,
}

type windowsRestart struct{}

func (w *windowsRestart) restart(s sshutil.Session, _ string, timeout time.Duration) Outcome {
	var attempts []string
	for _, cmd := range windowsRestartChain {
		result, err := s.Run(cmd, timeout)
		if outcome, ok := accepted(cmd, err); ok {
			if err == nil && result.ExitStatus != 0 {
				// Command ran but was refused (e.g. access denied);
				// move on to the next one in the chain.
				attempts = append(attempts, fmt.Sprintf("%s: exit %d: %s",
					cmd, result.ExitStatus, string(result.Stderr)))
				continue
			}
			return outcome
		}
		attempts = append(attempts, fmt.Sprintf("%s: %v", cmd, err))
	}

	return exhausted("Windows", attempts)
}
