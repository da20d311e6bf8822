package server

// DatabaseServerConfig selects and configures the store holding file metadata and weighted rows
type DatabaseServerConfig struct {
	Type     string                 `mapstructure:"type"      yaml:"type"`
	LogLevel string                 `mapstructure:"log_level" yaml:"log_level"`
	SQLite   DatabaseSQLiteConfig   `mapstructure:"sqlite"    yaml:"sqlite"`
	Postgres DatabasePostgresConfig `mapstructure:"postgres"  yaml:"postgres"`
}

// DatabaseSQLiteConfig holds SQLite-specific configuration
type DatabaseSQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DatabasePostgresConfig holds Postgres-specific configuration
type DatabasePostgresConfig struct {
	DSN          string `mapstructure:"dsn"            yaml:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
}
