package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mwantia/goweight/pkg/db/migrations"
	"github.com/mwantia/goweight/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormStore holds the operations shared by every gorm dialect
type gormStore struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Close closes the database connection
func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs all pending versioned migrations
func (s *gormStore) Migrate(ctx context.Context) error {
	if _, err := migrations.NewMigrator(s.db).Migrate(ctx); err != nil {
		return err
	}
	return nil
}

// Health checks database connectivity
func (s *gormStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// GetFileMetadata returns nil without error when the file is not tracked yet
func (s *gormStore) GetFileMetadata(ctx context.Context, filename string) (*models.FileMetadata, error) {
	var metadata models.FileMetadata
	err := s.db.WithContext(ctx).
		Preload("ImportedFile").
		Where("filename = ?", filename).
		First(&metadata).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &metadata, nil
}

func (s *gormStore) ListFileMetadata(ctx context.Context) ([]models.FileMetadata, error) {
	var metadata []models.FileMetadata
	err := s.db.WithContext(ctx).
		Preload("ImportedFile").
		Order("filename ASC").
		Find(&metadata).Error
	return metadata, err
}

func newGormConfig(level logger.LogLevel) *gorm.Config {
	// Default to silent logging
	if level == 0 {
		level = logger.Silent
	}

	return &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// ParseLogLevel maps a config value onto the gorm logger levels
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return logger.Error
	case "warn", "warning":
		return logger.Warn
	case "info", "debug":
		return logger.Info
	default:
		return logger.Silent
	}
}
