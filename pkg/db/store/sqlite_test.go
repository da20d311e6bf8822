package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	config "github.com/mwantia/goweight/internal/config/server"
	"github.com/mwantia/goweight/pkg/db/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) MetadataStore {
	s, err := NewMetadataStore(config.DatabaseServerConfig{
		Type:   "sqlite",
		SQLite: config.DatabaseSQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	ctx := context.Background()
	require.NoError(t, s.Connect(ctx))
	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestFileMetadataQueries(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Health(ctx))

	metadata, err := s.GetFileMetadata(ctx, "missing.yaml")
	require.NoError(t, err)
	require.Nil(t, metadata)

	for _, name := range []string{"b.yaml", "a.yaml"} {
		record := models.FileMetadata{
			Filename:     name,
			Hash:         "hash-" + name,
			LastModified: time.Now().UTC(),
			ImportedFile: &models.ImportedFile{ContentType: "item_weights"},
		}
		require.NoError(t, s.DB().Create(&record).Error)
	}

	metadata, err = s.GetFileMetadata(ctx, "a.yaml")
	require.NoError(t, err)
	require.Equal(t, "hash-a.yaml", metadata.Hash)
	require.NotNil(t, metadata.ImportedFile)
	require.Equal(t, "item_weights", metadata.ImportedFile.ContentType)

	list, err := s.ListFileMetadata(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a.yaml", list[0].Filename)
}

func TestNewMetadataStoreErrors(t *testing.T) {
	_, err := NewMetadataStore(config.DatabaseServerConfig{Type: "mysql"})
	require.Error(t, err)

	_, err = NewMetadataStore(config.DatabaseServerConfig{Type: "sqlite"})
	require.Error(t, err)

	_, err = NewMetadataStore(config.DatabaseServerConfig{Type: "postgres"})
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, logger.Silent, ParseLogLevel(""))
	require.Equal(t, logger.Warn, ParseLogLevel("WARN"))
	require.Equal(t, logger.Info, ParseLogLevel("debug"))
}
