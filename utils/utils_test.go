package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sonnet-scripts/sonnet-cli/utils"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docker-compose.yml")

	assert.False(t, utils.FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("services: {}\n"), 0644))
	assert.True(t, utils.FileExists(path))
	assert.False(t, utils.FileExists(dir))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"pgadmin", "minio", "dbtbase"}, utils.SplitList([]string{"pgadmin, minio", "", " dbtbase ,"}))
	assert.Empty(t, utils.SplitList(nil))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	v := viper.New()
	require.NoError(t, utils.ViperInit(v, ""))

	cfg := utils.LoadConfig(v)
	assert.Equal(t, "docker", cfg.Runtime.Binary)
	assert.Equal(t, "cli", cfg.Runtime.Driver)
	assert.Equal(t, 10*time.Second, cfg.Runtime.ProbeTimeout)
	assert.Equal(t, "127.0.0.1", cfg.Ports.Host)
	assert.Equal(t, time.Second, cfg.Ports.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.InitServices)
	assert.False(t, cfg.Plain)
}

func TestLoadConfigFromFile(t *testing.T) {
	configContent := `
runtime:
  binary: podman
  driver: api
  probe_timeout: 3s
ports:
  host: 0.0.0.0
init:
  services: [pgadmin, minio]
ui:
  plain: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0644))

	v := viper.New()
	require.NoError(t, utils.ViperInit(v, path))

	cfg := utils.LoadConfig(v)
	assert.Equal(t, "podman", cfg.Runtime.Binary)
	assert.Equal(t, "api", cfg.Runtime.Driver)
	assert.Equal(t, 3*time.Second, cfg.Runtime.ProbeTimeout)
	assert.Equal(t, "0.0.0.0", cfg.Ports.Host)
	assert.Equal(t, []string{"pgadmin", "minio"}, cfg.InitServices)
	assert.True(t, cfg.Plain)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SONNET_RUNTIME_BINARY", "nerdctl")
	t.Setenv("SONNET_LOG_LEVEL", "debug")

	v := viper.New()
	require.NoError(t, utils.ViperInit(v, ""))

	cfg := utils.LoadConfig(v)
	assert.Equal(t, "nerdctl", cfg.Runtime.Binary)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestViperInitMissingExplicitFile(t *testing.T) {
	err := utils.ViperInit(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
