package importer

import (
	"context"

	"github.com/mwantia/goweight/pkg/log"
	"gorm.io/gorm"
)

// Run imports target and reports whether the file was considered updated.
// The import is forced when force or any of the conditions is true.
func Run(ctx context.Context, db *gorm.DB, logger log.LoggerService, target Target, force bool, conditions ...bool) (bool, error) {
	for _, condition := range conditions {
		force = force || condition
	}

	return NewImporter(db, logger, target).Import(ctx, force)
}
