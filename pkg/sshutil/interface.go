package sshutil

import "time"

// Session defines the interface for remote command execution.
// Both the real Client and the mock in sshutil/testing satisfy it,
// which lets every SSH-dependent package be tested without a network.
type Session interface {
	// Run executes a command with a hard time bound. A non-zero exit
	// status with nil error means the command ran but failed.
	Run(cmd string, timeout time.Duration) (Result, error)

	// Start launches a command without waiting for completion.
	Start(cmd string) error

	// Close closes the connection. Callers must guarantee Close on
	// every exit path; sessions are never pooled or reused.
	Close() error

	// GetHost returns the display name of the host.
	GetHost() string

	// GetAddress returns the resolved host:port address.
	GetAddress() string
}
