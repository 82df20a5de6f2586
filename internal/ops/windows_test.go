package ops

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sshtesting "github.com/cobaltax/fleetwatch/pkg/sshutil/testing"
)

func TestWindowsRestartFirstCommandWorks(t *testing.T) {
	mock := sshtesting.NewMockSession("win.lan")
	mock.Respond("shutdown /r /t 0", sshtesting.CommandResponse{ExitStatus: 0})

	outcome := (&windowsRestart{}).restart(mock, "", time.Second)

	require.True(t, outcome.Success)
	assert.Contains(t, outcome.Message, "shutdown /r /t 0")
	assert.Len(t, mock.Calls(), 1)
}

func TestWindowsRestartNonZeroExitAdvancesChain(t *testing.T) {
	mock := sshtesting.NewMockSession("win.lan")
	mock.Respond("shutdown /r /t 0", sshtesting.CommandResponse{
		ExitStatus: 5,
		Stderr:     []byte("Access is denied."),
	})
	mock.Respond("shutdown /r /t 5", sshtesting.CommandResponse{ExitStatus: 0})

	outcome := (&windowsRestart{}).restart(mock, "", time.Second)

	require.True(t, outcome.Success)
	assert.Contains(t, outcome.Message, "shutdown /r /t 5")
	assert.Len(t, mock.Calls(), 2)
}

func TestWindowsRestartConnectionDropIsSuccess(t *testing.T) {
	mock := sshtesting.NewMockSession("win.lan")
	mock.Respond("shutdown /r /t 0", sshtesting.CommandResponse{
		ExitStatus: -1,
		Err:        errors.New("read tcp: connection reset by peer"),
	})

	outcome := (&windowsRestart{}).restart(mock, "", time.Second)

	require.True(t, outcome.Success)
	assert.Contains(t, outcome.Message, "connection dropped")
	assert.Len(t, mock.Calls(), 1)
}

func TestWindowsRestartExhaustsChain(t *testing.T) {
	// Every command runs but is refused.
	mock := sshtesting.NewMockSession("win.lan")
	mock.RespondPattern(`.`, sshtesting.CommandResponse{
		ExitStatus: 5,
		Stderr:     []byte("Access is denied."),
	})

	outcome := (&windowsRestart{}).restart(mock, "", time.Second)

	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Message, "All Windows restart commands failed")
	assert.Contains(t, outcome.Message, "Access is denied")
	assert.Len(t, mock.Calls(), len(windowsRestartChain))
}
