// Package sshutil wraps golang.org/x/crypto/ssh with the connection and
// execution semantics fleetwatch needs: bounded dial and auth, bounded
// one-shot command execution, and a failure taxonomy that distinguishes a
// dropped connection from every other kind of error.
package sshutil

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cobaltax/fleetwatch/internal/errors"
	"github.com/kevinburke/ssh_config"
	"golang.org/x/crypto/ssh"
)

// Options carries everything needed to open one authenticated session.
type Options struct {
	// Host is the display name used in error messages.
	Host string
	// Address is the ip or hostname to dial.
	Address string
	// Port defaults to 22 when zero.
	Port int
	// User is the remote account.
	User string
	// Password authenticates when KeyPath is empty.
	Password string
	// KeyPath points at a private key file and takes precedence
	// over Password.
	KeyPath string
	// Timeout bounds the TCP connect and the SSH handshake each.
	// A stalled banner or auth exchange cannot hang past it.
	Timeout time.Duration
}

func (o Options) address() string {
	port := o.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(o.Address, fmt.Sprintf("%d", port))
}

// Client wraps an SSH connection with its origin metadata.
type Client struct {
	*ssh.Client
	Host    string // display name of the host
	Address string // resolved address (host:port)
}

// Dial opens an authenticated connection. The TCP connect and the SSH
// handshake are bounded independently by opts.Timeout so a host that
// accepts the socket but stalls the banner still fails within budget.
func Dial(opts Options) (*Client, error) {
	config, err := buildClientConfig(opts)
	if err != nil {
		return nil, err
	}

	address := opts.address()
	conn, err := net.DialTimeout("tcp", address, opts.Timeout)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Can't reach '%s' at %s", opts.Host, address),
			suggestionForDialError(err))
	}

	// The handshake has its own deadline; ssh.ClientConfig.Timeout only
	// covers the dial when using ssh.Dial directly.
	if err := conn.SetDeadline(time.Now().Add(opts.Timeout)); err != nil {
		conn.Close()
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Couldn't arm handshake deadline for '%s'", opts.Host), "")
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", opts.Host),
			suggestionForHandshakeError(err))
	}

	// Clear the handshake deadline; command execution is bounded per call.
	_ = conn.SetDeadline(time.Time{})

	return &Client{
		Client:  ssh.NewClient(sshConn, chans, reqs),
		Host:    opts.Host,
		Address: address,
	}, nil
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

// GetHost returns the display name of the host.
func (c *Client) GetHost() string {
	return c.Host
}

// GetAddress returns the resolved host:port address.
func (c *Client) GetAddress() string {
	return c.Address
}

// buildClientConfig assembles auth methods in preference order:
// explicit key file, explicit password, then an IdentityFile resolved
// from ~/.ssh/config for hosts that configured neither.
func buildClientConfig(opts Options) (*ssh.ClientConfig, error) {
	var authMethods []ssh.AuthMethod

	if opts.KeyPath != "" {
		keyAuth, err := keyFileAuth(opts.KeyPath)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrSSH,
				fmt.Sprintf("Couldn't load SSH key for '%s'", opts.Host),
				"Check the ssh_key_path exists and is a valid private key")
		}
		authMethods = append(authMethods, keyAuth)
	}

	if opts.Password != "" && opts.KeyPath == "" {
		authMethods = append(authMethods, ssh.Password(opts.Password))
	}

	if len(authMethods) == 0 {
		// Last resort: an IdentityFile from the user's SSH config.
		if keyPath := identityFromSSHConfig(opts.Address); keyPath != "" {
			if keyAuth, err := keyFileAuth(keyPath); err == nil {
				authMethods = append(authMethods, keyAuth)
			}
		}
	}

	if len(authMethods) == 0 {
		return nil, errors.New(errors.ErrSSH,
			fmt.Sprintf("No SSH auth method available for '%s'", opts.Host),
			"Set ssh_password_env or ssh_key_path for the host")
	}

	return &ssh.ClientConfig{
		User: opts.User,
		Auth: authMethods,
		// The fleet lives on a closed LAN and hosts get reinstalled;
		// pinning host keys would strand the operator mid-incident.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
		Timeout:         opts.Timeout,
	}, nil
}

// keyFileAuth returns an auth method using a private key file.
func keyFileAuth(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(expandPath(keyPath))
	if err != nil {
		return nil, err
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, err
	}

	return ssh.PublicKeys(signer), nil
}

// identityFromSSHConfig resolves an IdentityFile for the address from
// ~/.ssh/config. Returns empty when none is configured.
func identityFromSSHConfig(address string) string {
	identity, err := ssh_config.GetStrict(address, "IdentityFile")
	if err != nil || identity == "" {
		return ""
	}
	return expandPath(identity)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func suggestionForDialError(err error) string {
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") {
		return "Is sshd running on that box?"
	}
	if strings.Contains(errStr, "no route to host") || strings.Contains(errStr, "network is unreachable") {
		return "Can't route to the host. Check your network connection."
	}
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "i/o timeout") {
		return "Connection timed out. Host might be offline or blocked by a firewall."
	}
	return "Make sure the host is reachable: ping <ip>"
}

func suggestionForHandshakeError(err error) string {
	errStr := err.Error()
	if strings.Contains(errStr, "unable to authenticate") || strings.Contains(errStr, "no supported methods") {
		return "Auth failed. Check ssh_user and the configured password env or key."
	}
	return "Something went wrong during SSH setup. Try: ssh <user>@<ip>"
}
