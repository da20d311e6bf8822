package server

import "github.com/spf13/viper"

func GetServerDefault() BaseServerConfig {
	return BaseServerConfig{
		ShutdownTimeout: "10s",

		Log: LogServerConfig{
			Level:      "INFO",
			Name:       "goweight",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogServerRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},

		Database: DatabaseServerConfig{
			Type:     "sqlite",
			LogLevel: "silent",
			SQLite: DatabaseSQLiteConfig{
				Path: "goweight.db",
			},
			Postgres: DatabasePostgresConfig{
				DSN:          "",
				MaxOpenConns: 10,
			},
		},

		Imports: []ImportServerConfig{
			{
				Name:        "items",
				File:        "data/item_weights.yaml",
				ContentType: "item_weights",
				Schema:      "slug_weights",
				Table:       "items",
			},
			{
				Name:        "variants",
				File:        "data/variant_weights.yaml",
				ContentType: "variant_weights",
				Schema:      "slug_weights",
				Table:       "variants",
				ParentTable: "items",
				ParentKey:   "item_id",
				DependsOn:   []string{"items"},
			},
		},
	}
}

func setDefaults() {
	defaults := GetServerDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.name", defaults.Log.Name)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	viper.SetDefault("database.type", defaults.Database.Type)
	viper.SetDefault("database.log_level", defaults.Database.LogLevel)
	viper.SetDefault("database.sqlite.path", defaults.Database.SQLite.Path)
	viper.SetDefault("database.postgres.dsn", defaults.Database.Postgres.DSN)
	viper.SetDefault("database.postgres.max_open_conns", defaults.Database.Postgres.MaxOpenConns)
	// imports has no default: an empty config file should not import the sample files
}
