package sshutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, KindUnknown},
		{"auth failure", errors.New("ssh: unable to authenticate, attempted methods [none password]"), KindAuth},
		{"permission denied", errors.New("permission denied (publickey)"), KindAuth},
		{"dial timeout", errors.New("dial tcp 192.168.1.10:22: i/o timeout"), KindTimeout},
		{"deadline", errors.New("context deadline exceeded"), KindTimeout},
		{"refused", errors.New("dial tcp 192.168.1.10:22: connect: connection refused"), KindNetwork},
		{"no route", errors.New("connect: no route to host"), KindNetwork},
		{"handshake", errors.New("ssh: handshake failed: read: connection reset"), KindProtocol},
		{"unknown", errors.New("something else entirely"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFailureKindString(t *testing.T) {
	assert.Equal(t, "authentication failed", KindAuth.String())
	assert.Equal(t, "network error", KindNetwork.String())
	assert.Equal(t, "timed out", KindTimeout.String())
	assert.Equal(t, "protocol error", KindProtocol.String())
	assert.Equal(t, "unknown error", KindUnknown.String())
}

func TestIsConnectionDrop(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"closed connection", errors.New("use of closed network connection"), true},
		{"reset by peer", errors.New("read tcp 10.0.0.1:22: connection reset by peer"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"ssh disconnect", errors.New("ssh: disconnect, msg: shutting down"), true},
		{"eof", errors.New("EOF"), true},
		{"socket closed", errors.New("socket is closed"), true},
		{"exit status", errors.New("Process exited with status 1"), false},
		{"auth failure", errors.New("ssh: unable to authenticate"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConnectionDrop(tt.err))
		})
	}
}
