// Package testing provides a scripted Session implementation so the
// probe, resources, and restart packages can be tested without opening
// real SSH connections.
package testing

import (
	"errors"
	"regexp"
	"sync"
	"time"

	"github.com/cobaltax/fleetwatch/pkg/sshutil"
)

// CommandResponse defines a canned response for a command pattern.
type CommandResponse struct {
	Stdout     []byte
	Stderr     []byte
	ExitStatus int
	Err        error
}

// MockSession simulates an SSH connection. Commands are matched first
// exactly, then against registered regex patterns, in registration order.
type MockSession struct {
	mu       sync.Mutex
	host     string
	address  string
	closed   bool
	exact    map[string]CommandResponse
	patterns []patternResponse
	startErr map[string]error
	calls    []string
}

type patternResponse struct {
	re   *regexp.Regexp
	resp CommandResponse
}

// NewMockSession creates a mock for the given host display name.
func NewMockSession(host string) *MockSession {
	return &MockSession{
		host:     host,
		address:  host + ":22",
		exact:    make(map[string]CommandResponse),
		startErr: make(map[string]error),
	}
}

// Respond registers a canned response for an exact command string.
func (m *MockSession) Respond(cmd string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exact[cmd] = resp
}

// RespondPattern registers a canned response for a regex pattern.
func (m *MockSession) RespondPattern(pattern string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, patternResponse{
		re:   regexp.MustCompile(pattern),
		resp: resp,
	})
}

// FailStart makes Start return the given error for commands matching the
// regex pattern. Used to simulate connection drops during detached reboots.
func (m *MockSession) FailStart(pattern string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startErr[pattern] = err
}

// Calls returns every command passed to Run or Start, in order.
func (m *MockSession) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Closed reports whether Close has been called.
func (m *MockSession) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Run implements sshutil.Session.
func (m *MockSession) Run(cmd string, _ time.Duration) (sshutil.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, cmd)

	if m.closed {
		return sshutil.Result{ExitStatus: -1}, errors.New("use of closed network connection")
	}

	if resp, ok := m.exact[cmd]; ok {
		return toResult(resp), resp.Err
	}
	for _, p := range m.patterns {
		if p.re.MatchString(cmd) {
			return toResult(p.resp), p.resp.Err
		}
	}

	// Unknown command: behave like a shell that can't find it.
	return sshutil.Result{ExitStatus: 127, Stderr: []byte("sh: command not found: " + cmd)}, nil
}

// Start implements sshutil.Session.
func (m *MockSession) Start(cmd string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, cmd)

	if m.closed {
		return errors.New("use of closed network connection")
	}
	for pattern, err := range m.startErr {
		if regexp.MustCompile(pattern).MatchString(cmd) {
			return err
		}
	}
	return nil
}

// Close implements sshutil.Session.
func (m *MockSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// GetHost implements sshutil.Session.
func (m *MockSession) GetHost() string { return m.host }

// GetAddress implements sshutil.Session.
func (m *MockSession) GetAddress() string { return m.address }

func toResult(resp CommandResponse) sshutil.Result {
	return sshutil.Result{
		ExitStatus: resp.ExitStatus,
		Stdout:     resp.Stdout,
		Stderr:     resp.Stderr,
	}
}
