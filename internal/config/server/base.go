package server

import (
	"fmt"

	"github.com/spf13/viper"
)

type BaseServerConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log      LogServerConfig      `mapstructure:"log"      yaml:"log"`
	Database DatabaseServerConfig `mapstructure:"database" yaml:"database"`
	Imports  []ImportServerConfig `mapstructure:"imports"  yaml:"imports"`
}

func LoadServerConfig() (*BaseServerConfig, error) {
	cfg := &BaseServerConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that import names are unique and that dependencies refer to
// imports declared earlier in the list, since imports run in declaration order.
func (cfg *BaseServerConfig) Validate() error {
	seen := make(map[string]bool, len(cfg.Imports))
	for i, imp := range cfg.Imports {
		if imp.Name == "" {
			return fmt.Errorf("imports[%d]: name is required", i)
		}
		if seen[imp.Name] {
			return fmt.Errorf("imports[%d]: duplicate import name '%s'", i, imp.Name)
		}
		if imp.File == "" || imp.Table == "" {
			return fmt.Errorf("import '%s': file and table are required", imp.Name)
		}
		if (imp.ParentTable == "") != (imp.ParentKey == "") {
			return fmt.Errorf("import '%s': parent_table and parent_key must be set together", imp.Name)
		}
		for _, dep := range imp.DependsOn {
			if !seen[dep] {
				return fmt.Errorf("import '%s': dependency '%s' must be declared before it", imp.Name, dep)
			}
		}
		seen[imp.Name] = true
	}

	switch cfg.Database.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type '%s'", cfg.Database.Type)
	}

	return nil
}
