package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fwerrors "github.com/cobaltax/fleetwatch/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
hosts:
  - name: hypervisor.lan
    ip: 192.168.1.10
    ssh_user: root
    ssh_password_env: HV_PASSWORD
    os_type: esxi
  - name: app.lan
    ip: 192.168.1.20
    ssh_user: admin
    ssh_key_path: ~/.ssh/id_ed25519
    ssh_port: 2222
    os_type: linux
    parent_ip: 192.168.1.10
ping_timeout: 5s
ssh_timeout: 15s
command_timeout: 20s
refresh_interval: 60s
max_concurrent: 8
audit_file: /var/log/fleetwatch-audit.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Hosts, 2)
	assert.Equal(t, "hypervisor.lan", cfg.Hosts[0].Name)
	assert.Equal(t, OSESXi, cfg.Hosts[0].OSType)
	assert.Equal(t, "HV_PASSWORD", cfg.Hosts[0].SSHPasswordEnv)
	assert.Equal(t, 22, cfg.Hosts[0].SSHPort, "port default applied")

	assert.Equal(t, 2222, cfg.Hosts[1].SSHPort)
	assert.Equal(t, "192.168.1.10", cfg.Hosts[1].ParentIP)

	assert.Equal(t, 5*time.Second, cfg.PingTimeout)
	assert.Equal(t, 15*time.Second, cfg.SSHTimeout)
	assert.Equal(t, 20*time.Second, cfg.CommandTimeout)
	assert.Equal(t, 60*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 8, cfg.MaxConcurrent)
	assert.Equal(t, "/var/log/fleetwatch-audit.log", cfg.AuditFile)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
hosts:
  - name: app.lan
    ip: 192.168.1.20
    ssh_user: admin
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, OSLinux, cfg.Hosts[0].OSType, "os_type defaults to linux")
	assert.Equal(t, 3*time.Second, cfg.PingTimeout)
	assert.Equal(t, 32, cfg.MaxConcurrent)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, fwerrors.IsCode(err, fwerrors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "hosts: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, fwerrors.IsCode(err, fwerrors.ErrConfig))
}

func TestFindExplicit(t *testing.T) {
	path := writeConfig(t, "hosts: []")

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = Find(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFindCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("hosts: []"), 0o644))
	t.Chdir(dir)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), found)
}
