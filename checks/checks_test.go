package checks_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/sonnet-scripts/sonnet-cli/checks"
	"github.com/sonnet-scripts/sonnet-cli/engine"
	"github.com/sonnet-scripts/sonnet-cli/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(m *engine.Mock, busy ...int) *checks.Validator {
	v := checks.NewValidator(m, services.Default())
	busySet := map[int]bool{}
	for _, p := range busy {
		busySet[p] = true
	}
	v.PortProbe = func(ctx context.Context, host string, port int) bool {
		return !busySet[port]
	}
	return v
}

func TestRuntimeAvailable(t *testing.T) {
	ok := newValidator(&engine.Mock{})
	assert.True(t, ok.RuntimeAvailable(context.Background()))

	down := newValidator(&engine.Mock{PingFunc: func(ctx context.Context) error {
		return errors.New("Cannot connect to the Docker daemon")
	}})
	assert.False(t, down.RuntimeAvailable(context.Background()))
}

func TestRuntimeAvailableTimesOut(t *testing.T) {
	v := newValidator(&engine.Mock{PingFunc: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	v.ProbeTimeout = 20 * time.Millisecond

	start := time.Now()
	assert.False(t, v.RuntimeAvailable(context.Background()))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLocalImagesAddsBareRepository(t *testing.T) {
	v := newValidator(&engine.Mock{ImagesFunc: func(ctx context.Context) ([]string, error) {
		return []string{"jupyterbase:latest", "registry.local:5000/dbtbase:v2"}, nil
	}})

	set, err := v.LocalImages(context.Background())
	require.NoError(t, err)
	assert.True(t, set.Has("jupyterbase:latest"))
	assert.True(t, set.Has("jupyterbase"))
	assert.True(t, set.Has("registry.local:5000/dbtbase:v2"))
	assert.True(t, set.Has("registry.local:5000/dbtbase"))
	assert.False(t, set.Has("registry.local"))
}

func TestLocalImagesFailureIsEmptySet(t *testing.T) {
	boom := errors.New("docker images failed")
	v := newValidator(&engine.Mock{ImagesFunc: func(ctx context.Context) ([]string, error) {
		return nil, boom
	}})

	set, err := v.LocalImages(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotNil(t, set)
	assert.Empty(t, set)
}

func TestCheckImages(t *testing.T) {
	m := &engine.Mock{ImagesFunc: func(ctx context.Context) ([]string, error) {
		return []string{"jupyterbase:latest"}, nil
	}}
	v := newValidator(m)

	available, missing, err := v.CheckImages(context.Background(), []string{"dbtbase", "pgduckdb", "jupyterbase", "ghost", "minio"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pgduckdb", "jupyterbase", "minio"}, available)
	assert.Equal(t, []string{"dbtbase"}, missing)
}

func TestCheckImagesIsIdempotent(t *testing.T) {
	m := &engine.Mock{ImagesFunc: func(ctx context.Context) ([]string, error) {
		return []string{"pipelinebase:latest", "other/tool:1.0"}, nil
	}}
	v := newValidator(m)
	selection := []string{"pgduckdb", "jupyterbase", "pipelinebase", "dbtbase", "minio"}

	available1, missing1, err := v.CheckImages(context.Background(), selection)
	require.NoError(t, err)
	available2, missing2, err := v.CheckImages(context.Background(), selection)
	require.NoError(t, err)

	assert.Equal(t, available1, available2)
	assert.Equal(t, missing1, missing2)
	assert.Equal(t, []string{"pgduckdb", "jupyterbase", "pipelinebase", "dbtbase", "minio"}, selection)
}

func TestCheckImagesPrebuiltOnlySkipsListing(t *testing.T) {
	m := &engine.Mock{}
	v := newValidator(m)

	available, missing, err := v.CheckImages(context.Background(), []string{"pgduckdb", "pgadmin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pgduckdb", "pgadmin"}, available)
	assert.Empty(t, missing)
	assert.Equal(t, 0, m.CallCount())
}

func TestCheckImagesListingFailureMarksLocalMissing(t *testing.T) {
	v := newValidator(&engine.Mock{ImagesFunc: func(ctx context.Context) ([]string, error) {
		return nil, errors.New("exit 1")
	}})

	available, missing, err := v.CheckImages(context.Background(), []string{"pgduckdb", "jupyterbase", "pipelinebase"})
	assert.Error(t, err)
	assert.Equal(t, []string{"pgduckdb"}, available)
	assert.Equal(t, []string{"jupyterbase", "pipelinebase"}, missing)
}

func TestCheckImagesPartitionsSelection(t *testing.T) {
	reg := services.Default()
	v := newValidator(&engine.Mock{ImagesFunc: func(ctx context.Context) ([]string, error) {
		return []string{"dbtbase:latest"}, nil
	}})

	selection := reg.Names()
	available, missing, err := v.CheckImages(context.Background(), selection)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, s := range append(available, missing...) {
		seen[s]++
	}
	assert.Len(t, seen, len(selection))
	for _, s := range selection {
		assert.Equal(t, 1, seen[s], s)
	}
}

func TestPortConflicts(t *testing.T) {
	v := newValidator(&engine.Mock{}, 5432, 9001)

	conflicts := v.PortConflicts([]string{"pgduckdb", "pgadmin", "minio", "pipelinebase"})
	assert.Equal(t, map[string][]int{
		"pgduckdb": {5432},
		"minio":    {9001},
	}, conflicts)
}

func TestPortConflictsNoneBusy(t *testing.T) {
	v := newValidator(&engine.Mock{})
	assert.Empty(t, v.PortConflicts(services.Default().Names()))
}

func TestRunCombinesChecks(t *testing.T) {
	v := newValidator(&engine.Mock{}, 8080)

	report := v.Run(context.Background(), []string{"pgduckdb", "pgadmin", "jupyterbase"})
	assert.Equal(t, []string{"pgduckdb", "pgadmin"}, report.Available)
	assert.Equal(t, []string{"jupyterbase"}, report.Missing)
	assert.Equal(t, map[string][]int{"pgadmin": {8080}}, report.PortConflicts)
	assert.NoError(t, report.ImageErr)
	assert.True(t, report.HasWarnings())
}

func TestProbePort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	assert.False(t, checks.ProbePort(context.Background(), "127.0.0.1", port))
	require.NoError(t, ln.Close())
	assert.True(t, checks.ProbePort(context.Background(), "127.0.0.1", port))
}

func TestPortAvailableUsesRealProbeByDefault(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	v := checks.NewValidator(&engine.Mock{}, services.Default())
	assert.False(t, v.PortAvailable(ln.Addr().(*net.TCPAddr).Port))
}
