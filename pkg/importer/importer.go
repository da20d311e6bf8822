package importer

import (
	"context"
	"fmt"

	"github.com/mwantia/goweight/pkg/fingerprint"
	"github.com/mwantia/goweight/pkg/log"
	"gorm.io/gorm"
)

// Importer applies the weights of a single file to its target table.
type Importer struct {
	db     *gorm.DB
	log    log.LoggerService
	target Target

	fileUpdated bool
}

func NewImporter(db *gorm.DB, logger log.LoggerService, target Target) *Importer {
	if target.Schema == nil {
		target.Schema = SlugWeights{}
	}

	return &Importer{
		db:     db,
		log:    logger,
		target: target,
	}
}

// FileUpdated reports whether the last Import considered the file new, changed or forced.
func (i *Importer) FileUpdated() bool {
	return i.fileUpdated
}

// Import reconciles the file fingerprint and, when the file changed or force
// is set, rewrites every weight of the target inside one transaction.
//
// Load failures are logged and treated as an empty file. Commit failures are
// logged and rolled back without being returned. Hashing and validation
// failures roll back and are returned.
func (i *Importer) Import(ctx context.Context, force bool) (bool, error) {
	if err := i.target.Validate(); err != nil {
		return false, err
	}

	i.log.Info("Importing weights for %s...", i.target.Name)

	tx := i.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	_, changed, err := fingerprint.Reconcile(ctx, tx, i.target.File, i.target.ContentType, force)
	if err != nil {
		tx.Rollback()
		return false, err
	}
	i.fileUpdated = changed

	if changed || force {
		if err := i.process(ctx, tx); err != nil {
			tx.Rollback()
			return changed, err
		}
	}

	i.commit(tx)

	i.log.Info("Importing weights for %s... DONE", i.target.Name)
	return changed, nil
}

func (i *Importer) process(ctx context.Context, tx *gorm.DB) error {
	rows, err := LoadRows(ctx, tx, i.target)
	if err != nil {
		return err
	}

	raw := Load(i.target.File, i.log)

	entries, err := i.target.Schema.Validate(raw)
	if err != nil {
		i.log.Error("Validation error: %v", err)
		return err
	}

	affected, err := Apply(ctx, tx, i.target, rows, entries)
	if err != nil {
		return err
	}

	i.log.Debug("Resolved %d entries against %d rows of '%s' (%d updated)",
		len(entries), len(rows), i.target.Table, affected)
	return nil
}

func (i *Importer) commit(tx *gorm.DB) {
	if err := tx.Commit().Error; err != nil {
		i.log.Error("Error committing changes to the database: %v", err)
		tx.Rollback()
	}
}
