package sshutil

import (
	"time"

	"github.com/cobaltax/fleetwatch/internal/config"
)

// DialHost opens an authenticated session to a configured host, resolving
// the password from its environment variable at dial time.
func DialHost(h config.Host, timeout time.Duration) (*Client, error) {
	return Dial(Options{
		Host:     h.Name,
		Address:  h.IP,
		Port:     h.Port(),
		User:     h.SSHUser,
		Password: h.Password(),
		KeyPath:  h.SSHKeyPath,
		Timeout:  timeout,
	})
}
