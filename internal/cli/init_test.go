package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltax/fleetwatch/internal/config"
)

func TestInitCommandWritesLoadableConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, initCommand())

	// The generated file round-trips through the real loader and validator.
	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	require.NoError(t, config.Validate(cfg))

	require.Len(t, cfg.Hosts, 2)
	assert.Equal(t, config.OSESXi, cfg.Hosts[0].OSType)
	assert.Equal(t, cfg.Hosts[0].IP, cfg.Hosts[1].ParentIP)
	assert.Positive(t, cfg.MaxConcurrent)
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(config.ConfigFileName, []byte("hosts: []"), 0o644))

	err := initCommand()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommandForceOverwrites(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(config.ConfigFileName, []byte("hosts: []"), 0o644))

	old := initForce
	initForce = true
	defer func() { initForce = old }()

	require.NoError(t, initCommand())

	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Hosts)
}
