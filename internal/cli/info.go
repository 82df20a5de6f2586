package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/cobaltax/fleetwatch/internal/errors"
	"github.com/cobaltax/fleetwatch/internal/ops"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <host>",
	Short: "Show identification details for a host",
	Long:  `Connects over SSH and runs a small identification bundle (uname, uptime, account, init system).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return infoCommand(args[0])
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <host> <command>",
	Short: "Run a single command on a host",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execCommand(args[0], strings.Join(args[1:], " "))
	},
}

func infoCommand(arg string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := hostByNameOrIP(cfg, arg)
	if err != nil {
		return err
	}

	outcome := ops.NewDispatcher(cfg, newAudit(cfg)).SystemInfo(h)
	if !outcome.Success {
		return errors.New(errors.ErrSSH, outcome.Message,
			"Check ssh_user and credentials for this host")
	}

	fmt.Println(outcome.Message)
	return nil
}

func execCommand(arg, command string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := hostByNameOrIP(cfg, arg)
	if err != nil {
		return err
	}

	ok, stdout, stderr := ops.NewDispatcher(cfg, newAudit(cfg)).Execute(h, command)
	if !ok {
		return errors.New(errors.ErrExec, stderr,
			"Check the command and the host's credentials")
	}

	if stdout != "" {
		fmt.Print(stdout)
	}
	if stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}
	return nil
}
