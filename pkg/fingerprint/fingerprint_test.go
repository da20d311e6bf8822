package fingerprint

import (
	"bytes"
	"context"
	stdlog "log"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/goweight/pkg/db/migrations"
	"github.com/mwantia/goweight/pkg/db/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite db")
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	})

	_, err = migrations.NewMigrator(db).Migrate(context.Background())
	require.NoError(t, err, "failed to migrate")
	return db
}

func writeFile(t *testing.T, path, content string) {
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	writeFile(t, path, "hello")

	hash, err := Hash(path)
	require.NoError(t, err)
	require.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", hash)

	_, err = Hash(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReconcileNewFile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "weights.yaml")
	writeFile(t, path, "- slug: a\n  weight: 1\n")

	metadata, changed, err := Reconcile(ctx, db, path, "item_weights", false)
	require.NoError(t, err)
	require.True(t, changed, "first encounter must report a change")
	require.NotZero(t, metadata.ID)

	var files []models.FileMetadata
	require.NoError(t, db.Find(&files).Error)
	require.Len(t, files, 1)

	var imported []models.ImportedFile
	require.NoError(t, db.Find(&imported).Error)
	require.Len(t, imported, 1)
	require.Equal(t, metadata.ID, imported[0].FileMetadataID)
	require.Equal(t, "item_weights", imported[0].ContentType)
}

func TestReconcileUnchangedChangedAndForced(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "weights.yaml")
	writeFile(t, path, "- slug: a\n  weight: 1\n")

	first, changed, err := Reconcile(ctx, db, path, "item_weights", false)
	require.NoError(t, err)
	require.True(t, changed)

	_, changed, err = Reconcile(ctx, db, path, "item_weights", false)
	require.NoError(t, err)
	require.False(t, changed, "unchanged content must not report a change")

	_, changed, err = Reconcile(ctx, db, path, "item_weights", true)
	require.NoError(t, err)
	require.True(t, changed, "force must report a change")

	writeFile(t, path, "- slug: a\n  weight: 2\n")
	updated, changed, err := Reconcile(ctx, db, path, "item_weights", false)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, first.ID, updated.ID)
	require.NotEqual(t, first.Hash, updated.Hash)

	var stored models.FileMetadata
	require.NoError(t, db.First(&stored, first.ID).Error)
	require.Equal(t, updated.Hash, stored.Hash)

	var count int64
	require.NoError(t, db.Model(&models.ImportedFile{}).Count(&count).Error)
	require.Equal(t, int64(1), count, "imported file is created only once")
}

func TestReconcileMissingFile(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := Reconcile(context.Background(), db, filepath.Join(t.TempDir(), "missing.yaml"), "item_weights", false)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReconcileNewFileDoesNotLogErrors(t *testing.T) {
	var buf bytes.Buffer
	db := setupTestDB(t)
	db = db.Session(&gorm.Session{
		Logger: logger.New(stdlog.New(&buf, "", 0), logger.Config{LogLevel: logger.Error}),
	})

	path := filepath.Join(t.TempDir(), "weights.yaml")
	writeFile(t, path, "[]\n")

	_, changed, err := Reconcile(context.Background(), db, path, "item_weights", false)
	require.NoError(t, err)
	require.True(t, changed)
	require.NotContains(t, buf.String(), "record not found")
	require.Empty(t, buf.String())
}
