package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cobaltax/fleetwatch/internal/errors"
	"github.com/cobaltax/fleetwatch/internal/ops"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var restartYes bool

func init() {
	restartCmd.Flags().BoolVarP(&restartYes, "yes", "y", false, "skip the confirmation prompt")
}

var restartCmd = &cobra.Command{
	Use:   "restart <host>",
	Short: "Restart a host over SSH",
	Long: `Walks the host's reboot fallback chain until one command is accepted.
A dropped connection during an attempt means the host is going down and
counts as success. Every attempt is recorded in the audit log.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return restartCommand(args[0])
	},
}

func restartCommand(arg string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := hostByNameOrIP(cfg, arg)
	if err != nil {
		return err
	}

	auditLog := newAudit(cfg)

	if !restartYes {
		ok, err := confirmRestart(h.Name, h.IP)
		if err != nil {
			return err
		}
		if !ok {
			auditLog.Event("restart_cancelled", map[string]interface{}{
				"server": h.Name,
				"ip":     h.IP,
			})
			fmt.Println("Cancelled.")
			return nil
		}
	}

	dispatcher := ops.NewDispatcher(cfg, auditLog)
	outcome := dispatcher.Restart(h)

	if !outcome.Success {
		return errors.New(errors.ErrRestart, outcome.Message,
			"Try 'fleetwatch sudo "+arg+"' to check privileges first")
	}

	fmt.Println(outcome.Message)
	return nil
}

// confirmRestart asks for an explicit yes. Without a terminal there is no
// one to ask, so the caller must pass --yes.
func confirmRestart(name, ip string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New(errors.ErrRestart,
			"Refusing to restart without confirmation on a non-interactive session",
			"Pass --yes to confirm")
	}

	fmt.Printf("Restart %s (%s)? [y/N] ", name, ip)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
