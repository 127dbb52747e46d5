package services_test

import (
	"testing"

	"github.com/sonnet-scripts/sonnet-cli/services"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	reg := services.Default()

	tests := []struct {
		name      string
		selection []string
		want      map[string][]string
	}{
		{
			name:      "admin ui depends on database",
			selection: []string{"pgduckdb", "pgadmin"},
			want:      map[string][]string{"pgadmin": {"pgduckdb"}},
		},
		{
			name:      "dependency outside selection is dropped",
			selection: []string{"pgadmin"},
			want:      map[string][]string{},
		},
		{
			name:      "partial dependency set keeps declaration order",
			selection: []string{"minio", "pipelinebase", "pgduckdb"},
			want:      map[string][]string{"pipelinebase": {"pgduckdb", "minio"}},
		},
		{
			name:      "unknown names contribute nothing",
			selection: []string{"ghost", "pgduckdb", "dbtbase"},
			want:      map[string][]string{"dbtbase": {"pgduckdb"}},
		},
		{
			name:      "empty selection",
			selection: nil,
			want:      map[string][]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Resolve(tt.selection))
		})
	}
}

func TestResolveEdgesStayInsideSelection(t *testing.T) {
	reg := services.Default()
	selection := []string{"pgadmin", "cloudbeaver", "pipelinebase", "dbtbase"}

	edges := reg.Resolve(selection)
	inSelection := map[string]bool{}
	for _, s := range selection {
		inSelection[s] = true
	}
	for svc, deps := range edges {
		assert.True(t, inSelection[svc])
		assert.NotEmpty(t, deps)
		for _, d := range deps {
			assert.True(t, inSelection[d], "%s -> %s escapes the selection", svc, d)
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	reg := services.Default()
	selection := reg.Names()
	assert.Equal(t, reg.Resolve(selection), reg.Resolve(selection))
}
