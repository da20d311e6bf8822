package importer

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is an existing target row. ParentID is only set when the target stores
// its weight on a parent table.
type Row struct {
	ID       uint
	Slug     string
	ParentID uint
}

type mapping struct {
	Key    uint
	Weight int
}

// LoadRows returns every distinct row of the target table ordered by id.
func LoadRows(ctx context.Context, tx *gorm.DB, target Target) ([]Row, error) {
	query := "SELECT DISTINCT ?, ? FROM ? ORDER BY ?"
	args := []any{
		clause.Column{Name: "id"},
		clause.Column{Name: "slug"},
		clause.Table{Name: target.Table},
		clause.Column{Name: "id"},
	}
	if target.HasParent() {
		query = "SELECT DISTINCT ?, ?, ? AS parent_id FROM ? ORDER BY ?"
		args = []any{
			clause.Column{Name: "id"},
			clause.Column{Name: "slug"},
			clause.Column{Name: target.ParentKey},
			clause.Table{Name: target.Table},
			clause.Column{Name: "id"},
		}
	}

	var rows []Row
	if err := tx.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load rows from '%s': %w", target.Table, err)
	}
	return rows, nil
}

// Resolve returns the weight of the first entry matching slug, or 0.
func Resolve(entries []Entry, slug string) int {
	for _, e := range entries {
		if e.Slug == slug {
			return e.Weight
		}
	}
	return 0
}

func buildMappings(target Target, rows []Row, entries []Entry) []mapping {
	index := make(map[uint]int, len(rows))
	mappings := make([]mapping, 0, len(rows))

	for _, row := range rows {
		key := row.ID
		if target.HasParent() {
			key = row.ParentID
		}

		weight := Resolve(entries, row.Slug)
		// several children may share a parent; the last one wins
		if i, ok := index[key]; ok {
			mappings[i].Weight = weight
			continue
		}

		index[key] = len(mappings)
		mappings = append(mappings, mapping{Key: key, Weight: weight})
	}

	return mappings
}

// Apply resolves a weight for every row and writes all of them with a single
// UPDATE against the target table, or its parent table when configured.
func Apply(ctx context.Context, tx *gorm.DB, target Target, rows []Row, entries []Entry) (int64, error) {
	mappings := buildMappings(target, rows, entries)
	if len(mappings) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	keys := make([]uint, 0, len(mappings))
	args := make([]any, 0, 2*len(mappings)+1)

	sb.WriteString("CASE ?")
	args = append(args, clause.Column{Name: "id"})
	for _, m := range mappings {
		sb.WriteString(" WHEN ? THEN CAST(? AS INTEGER)")
		args = append(args, m.Key, m.Weight)
		keys = append(keys, m.Key)
	}
	sb.WriteString(" ELSE ? END")
	args = append(args, clause.Column{Name: "weight"})

	result := tx.WithContext(ctx).
		Table(target.UpdateTable()).
		Where("id IN ?", keys).
		Update("weight", gorm.Expr(sb.String(), args...))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update weights in '%s': %w", target.UpdateTable(), result.Error)
	}

	return result.RowsAffected, nil
}
