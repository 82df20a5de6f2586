package cli

import (
	"fmt"
	"os"

	"github.com/cobaltax/fleetwatch/internal/errors"
	"github.com/cobaltax/fleetwatch/internal/ops"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var sudoAsk bool

func init() {
	sudoCmd.Flags().BoolVar(&sudoAsk, "ask", false, "prompt for the sudo password instead of using the configured env var")
}

var sudoCmd = &cobra.Command{
	Use:   "sudo <host>",
	Short: "Check whether the SSH account can elevate on a host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sudoCommand(args[0])
	},
}

// askPasswordEnv carries a password typed at the prompt through the same
// env-var indirection the config uses, so it never lands in a file.
const askPasswordEnv = "FLEETWATCH_ASK_PASSWORD"

func sudoCommand(arg string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	h, err := hostByNameOrIP(cfg, arg)
	if err != nil {
		return err
	}

	if sudoAsk {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New(errors.ErrConfig,
				"--ask needs an interactive terminal",
				"Set ssh_password_env for the host instead")
		}
		fmt.Printf("Password for %s@%s: ", h.SSHUser, h.Name)
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't read the password", "")
		}
		os.Setenv(askPasswordEnv, string(password))
		h.SSHPasswordEnv = askPasswordEnv
	}

	outcome := ops.NewDispatcher(cfg, newAudit(cfg)).TestSudo(h)
	if !outcome.Success {
		return errors.New(errors.ErrExec, outcome.Message,
			"Configure passwordless sudo or set ssh_password_env for this host")
	}

	fmt.Println(outcome.Message)
	return nil
}
