package store

import (
	"context"

	"github.com/mwantia/goweight/pkg/db/models"
	"gorm.io/gorm"
)

// MetadataStore defines the interface for database operations
type MetadataStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// DB exposes the session passed to importers
	DB() *gorm.DB

	// File metadata operations
	GetFileMetadata(ctx context.Context, filename string) (*models.FileMetadata, error)
	ListFileMetadata(ctx context.Context) ([]models.FileMetadata, error)
}
