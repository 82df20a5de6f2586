package sshutil

import "strings"

// FailureKind buckets session errors into the categories callers react to
// differently. Matching is on error text because the underlying transport
// does not export typed errors for these conditions.
type FailureKind int

const (
	KindUnknown FailureKind = iota
	KindAuth
	KindNetwork
	KindTimeout
	KindProtocol
)

// String returns a human-readable description of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case KindAuth:
		return "authentication failed"
	case KindNetwork:
		return "network error"
	case KindTimeout:
		return "timed out"
	case KindProtocol:
		return "protocol error"
	default:
		return "unknown error"
	}
}

// Classify buckets a session error. Never returns KindUnknown for nil input;
// callers must check err != nil first.
func Classify(err error) FailureKind {
	if err == nil {
		return KindUnknown
	}
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "unable to authenticate"),
		strings.Contains(errStr, "no supported methods"),
		strings.Contains(errStr, "permission denied"),
		strings.Contains(errStr, "authentication failed"):
		return KindAuth
	case strings.Contains(errStr, "timeout"),
		strings.Contains(errStr, "timed out"),
		strings.Contains(errStr, "deadline exceeded"):
		return KindTimeout
	case strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no route to host"),
		strings.Contains(errStr, "network is unreachable"),
		strings.Contains(errStr, "host is down"):
		return KindNetwork
	case strings.Contains(errStr, "ssh:"),
		strings.Contains(errStr, "handshake"):
		return KindProtocol
	default:
		return KindUnknown
	}
}

// IsConnectionDrop reports whether the error looks like the remote end
// tore the connection down mid-operation. During a restart this is the
// expected signature of a host that is actually rebooting, so callers
// treat it as acceptance rather than failure.
func IsConnectionDrop(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())

	for _, marker := range []string{
		"use of closed network connection",
		"connection reset by peer",
		"broken pipe",
		"ssh: disconnect",
		"connection lost",
		"socket is closed",
		"unexpected packet",
		"eof",
	} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}
