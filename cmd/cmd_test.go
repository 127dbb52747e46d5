package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sonnet-scripts/sonnet-cli/checks"
	"github.com/sonnet-scripts/sonnet-cli/engine"
	"github.com/sonnet-scripts/sonnet-cli/services"
	"github.com/sonnet-scripts/sonnet-cli/stack"
	"github.com/sonnet-scripts/sonnet-cli/utils"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMockManager(t *testing.T, m *engine.Mock) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SONNET_UI_PLAIN", "true")

	orig := newManager
	newManager = func() (*stack.Manager, error) {
		mgr := stack.NewManager(m, services.Default())
		mgr.Validator.PortProbe = func(ctx context.Context, host string, port int) bool { return true }
		return mgr, nil
	}
	t.Cleanup(func() {
		newManager = orig
		targetDir, interactive, force, serviceValues = "", false, false, nil
		upProjectDir, downProjectDir, statusProjectDir = ".", ".", "."
	})
}

func run(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestInitCreatesProject(t *testing.T) {
	withMockManager(t, &engine.Mock{})
	target := t.TempDir()

	require.NoError(t, run("init", "demo", "--target-dir", target, "--services", "minio,pgadmin"))

	manifest, err := os.ReadFile(filepath.Join(target, "demo", "docker-compose.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "minio")
	assert.Contains(t, string(manifest), "pgadmin")
	assert.Contains(t, string(manifest), "pgduckdb")
}

func TestInitRejectsUnknownService(t *testing.T) {
	withMockManager(t, &engine.Mock{})
	target := t.TempDir()

	err := run("init", "demo", "--target-dir", target, "--services", "kafka")
	assert.ErrorIs(t, err, errUnknownService)
	assert.NoDirExists(t, filepath.Join(target, "demo"))
}

func TestInitExistingDirectory(t *testing.T) {
	withMockManager(t, &engine.Mock{})
	target := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(target, "demo"), 0755))

	err := run("init", "demo", "--target-dir", target)
	assert.ErrorIs(t, err, stack.ErrProjectExists)
}

func TestInitForceKeepsNonProjectDirectory(t *testing.T) {
	withMockManager(t, &engine.Mock{})
	target := t.TempDir()
	userFile := filepath.Join(target, "src", "main.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(userFile), 0755))
	require.NoError(t, os.WriteFile(userFile, []byte("package main\n"), 0644))

	err := run("init", "src", "--target-dir", target, "--force")
	assert.ErrorIs(t, err, stack.ErrProjectExists)
	assert.FileExists(t, userFile)
}

func TestLifecycleCommandsOutsideProject(t *testing.T) {
	m := &engine.Mock{}
	withMockManager(t, m)
	dir := t.TempDir()

	for _, c := range []string{"up", "down", "status"} {
		err := run(c, "--project-dir", dir)
		assert.ErrorIs(t, err, stack.ErrNotAProject, c)
	}
	assert.Equal(t, 0, m.CallCount())
}

func TestUpDownStatusCommands(t *testing.T) {
	m := &engine.Mock{}
	withMockManager(t, m)
	target := t.TempDir()
	require.NoError(t, run("init", "demo", "--target-dir", target))
	dir := filepath.Join(target, "demo")

	require.NoError(t, run("up", "-d", dir))
	require.NoError(t, run("status", "-d", dir))
	require.NoError(t, run("down", "-d", dir))

	assert.Equal(t, [][]string{{"up", "-d"}, {"ps", "--format", "json"}, {"down"}}, m.ComposeCalls())
}

func TestServicesCommand(t *testing.T) {
	withMockManager(t, &engine.Mock{})
	assert.NoError(t, run("services"))
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantHint string
	}{
		{"runtime", stack.ErrRuntimeUnavailable, "Docker is not running. Please start Docker Desktop or the Docker daemon.", ""},
		{"exists", &stack.ProjectExistsError{Path: "/tmp/demo"}, "Directory '/tmp/demo' already exists. Use --force to overwrite.", ""},
		{"exists forced", &stack.ProjectExistsError{Path: "/tmp/src", Forced: true}, "Directory '/tmp/src' already exists and is not a sonnet project.", "--force only replaces directories that contain a docker-compose.yml."},
		{"cancelled", fmt.Errorf("writing: %w", context.Canceled), "Cancelled.", "Files written before cancelling stay in the project directory."},
		{"not a project", stack.ErrNotAProject, "Not a sonnet project. No docker-compose.yml found.", "Run 'sonnet init' to create a new project."},
		{"compose", &stack.ComposeError{Command: "up", Stderr: "boom"}, "docker compose up failed:\nboom", ""},
		{"other", errors.New("plain"), "plain", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, hint := describeError(tt.err)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantHint, hint)
		})
	}
}

func TestResolveServices(t *testing.T) {
	reg := services.Default()

	got, err := resolveServices(reg, []string{"minio"}, []string{"dbtbase"})
	require.NoError(t, err)
	assert.Equal(t, []string{"minio"}, got)

	got, err = resolveServices(reg, nil, []string{"dbtbase"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dbtbase"}, got)

	got, err = resolveServices(reg, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = resolveServices(reg, []string{"minio", "kafka"}, nil)
	assert.ErrorIs(t, err, errUnknownService)
	assert.ErrorContains(t, err, "kafka")
}

func TestConfirmDefaults(t *testing.T) {
	reg := services.Default()
	assert.True(t, confirmDefault(reg, "pgadmin", nil))
	for _, name := range []string{"cloudbeaver", "minio", "jupyterbase", "pipelinebase", "dbtbase"} {
		assert.False(t, confirmDefault(reg, name, nil), name)
	}

	preselected := []string{"minio", "dbtbase"}
	assert.True(t, confirmDefault(reg, "minio", preselected))
	assert.True(t, confirmDefault(reg, "dbtbase", preselected))
	assert.False(t, confirmDefault(reg, "pgadmin", preselected))

	minio, _ := reg.Lookup("minio")
	assert.Equal(t, "S3-compatible object storage (port 9000)", confirmDescription(minio))
	dbt, _ := reg.Lookup("dbtbase")
	assert.Equal(t, "dbt Core for transformations", confirmDescription(dbt))
}

func TestEndpointsFor(t *testing.T) {
	mgr := stack.NewManager(&engine.Mock{}, services.Default())
	got := endpointsFor(mgr, []string{"minio", "pgduckdb", "dbtbase"})

	require.Len(t, got, 2)
	assert.Equal(t, "pgduckdb", got[0].Service)
	assert.Equal(t, "minio", got[1].Service)
}

func TestNewManagerValidatesCatalog(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, utils.ViperInit(viper.GetViper(), ""))

	mgr, err := newManager()
	require.NoError(t, err)
	assert.Equal(t, services.Default().Names(), mgr.Registry.Names())
	assert.Equal(t, checks.DefaultPortHost, mgr.Validator.PortHost)
}
