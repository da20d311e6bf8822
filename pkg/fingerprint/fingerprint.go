// Package fingerprint detects changes to imported files by comparing their
// content hash with the one recorded during the previous import.
package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/mwantia/goweight/pkg/db/models"
	"gorm.io/gorm"
)

// Hash returns the hex encoded SHA-256 digest of the file content.
func Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file '%s': %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file '%s': %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Reconcile compares the current hash of path with the stored metadata and
// records the new state in tx. The returned flag reports whether the file is
// new, changed or forced. Nothing is committed here.
func Reconcile(ctx context.Context, tx *gorm.DB, path, contentType string, force bool) (*models.FileMetadata, bool, error) {
	db := tx.WithContext(ctx)

	// Find instead of First: a missing record is the normal first encounter
	var existing models.FileMetadata
	result := db.Where("filename = ?", path).Limit(1).Find(&existing)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to query file metadata: %w", result.Error)
	}
	found := result.RowsAffected > 0

	hash, err := Hash(path)
	if err != nil {
		return nil, false, err
	}
	now := db.NowFunc()

	if !found {
		metadata := &models.FileMetadata{
			Filename:     path,
			Hash:         hash,
			LastModified: now,
		}
		if err := db.Create(metadata).Error; err != nil {
			return nil, false, fmt.Errorf("failed to create file metadata: %w", err)
		}

		metadata.ImportedFile = &models.ImportedFile{
			FileMetadataID: metadata.ID,
			ContentType:    contentType,
		}
		if err := db.Create(metadata.ImportedFile).Error; err != nil {
			return nil, false, fmt.Errorf("failed to create imported file: %w", err)
		}

		return metadata, true, nil
	}

	if existing.Hash == hash && !force {
		return &existing, false, nil
	}

	existing.Hash = hash
	existing.LastModified = now

	err = db.Model(&existing).Updates(map[string]any{
		"hash":          hash,
		"last_modified": now,
	}).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to update file metadata: %w", err)
	}

	return &existing, true, nil
}
