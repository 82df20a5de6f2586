package sshutil

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cobaltax/fleetwatch/internal/errors"
	"golang.org/x/crypto/ssh"
)

// Result holds the outcome of one remote command.
type Result struct {
	ExitStatus int
	Stdout     []byte
	Stderr     []byte
}

// Run executes a command on the remote host with a hard time bound.
// A non-zero exit status is not an error; the command ran. The session
// is always closed before returning, on every path, so repeated refresh
// cycles never leak channels.
func (c *Client) Run(cmd string, timeout time.Duration) (Result, error) {
	session, err := c.Client.NewSession()
	if err != nil {
		return Result{ExitStatus: -1}, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer session.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	done := make(chan error, 1)
	go func() {
		done <- session.Run(cmd)
	}()

	var runErr error
	select {
	case runErr = <-done:
	case <-time.After(timeout):
		// Force the blocked Run to return; the goroutine drains on its own.
		_ = session.Close()
		return Result{ExitStatus: -1}, errors.WrapWithCode(
			fmt.Errorf("command timed out after %s", timeout), errors.ErrExec,
			fmt.Sprintf("Command on '%s' exceeded its time budget: %s", c.Host, cmd),
			"The host may be overloaded or the command hung.")
	}

	result := Result{
		ExitStatus: 0,
		Stdout:     stdoutBuf.Bytes(),
		Stderr:     stderrBuf.Bytes(),
	}

	if runErr != nil {
		if exitErr, ok := runErr.(*ssh.ExitError); ok {
			result.ExitStatus = exitErr.ExitStatus()
			return result, nil
		}
		result.ExitStatus = -1
		return result, runErr
	}

	return result, nil
}

// Start launches a command without waiting for it to finish. Used for
// detached invocations (reboots) where the session is not expected to
// survive the command's effect.
func (c *Client) Start(cmd string) error {
	session, err := c.Client.NewSession()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer session.Close()

	return session.Start(cmd)
}
