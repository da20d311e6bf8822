package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetServerDefault()
	require.NoError(t, cfg.Validate())
}

func TestValidateImports(t *testing.T) {
	tests := []struct {
		name    string
		imports []ImportServerConfig
	}{
		{"missing name", []ImportServerConfig{{File: "a.yaml", Table: "items"}}},
		{"missing table", []ImportServerConfig{{Name: "a", File: "a.yaml"}}},
		{"duplicate name", []ImportServerConfig{
			{Name: "a", File: "a.yaml", Table: "items"},
			{Name: "a", File: "b.yaml", Table: "items"},
		}},
		{"parent without key", []ImportServerConfig{{Name: "a", File: "a.yaml", Table: "variants", ParentTable: "items"}}},
		{"dependency declared later", []ImportServerConfig{
			{Name: "a", File: "a.yaml", Table: "items", DependsOn: []string{"b"}},
			{Name: "b", File: "b.yaml", Table: "items"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetServerDefault()
			cfg.Imports = tt.imports
			require.Error(t, cfg.Validate())
		})
	}
}

func TestValidateDatabaseType(t *testing.T) {
	cfg := GetServerDefault()
	cfg.Database.Type = "mysql"
	require.Error(t, cfg.Validate())
}
