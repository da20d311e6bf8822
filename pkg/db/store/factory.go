package store

import (
	"fmt"

	config "github.com/mwantia/goweight/internal/config/server"
)

// NewMetadataStore creates the store selected by the database configuration
func NewMetadataStore(cfg config.DatabaseServerConfig) (MetadataStore, error) {
	level := ParseLogLevel(cfg.LogLevel)

	switch cfg.Type {
	case "sqlite", "":
		s, err := NewSQLiteStore(SQLiteConfig{
			Path:     cfg.SQLite.Path,
			LogLevel: level,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := NewPostgresStore(PostgresConfig{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			LogLevel:     level,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported database type '%s'", cfg.Type)
	}
}
