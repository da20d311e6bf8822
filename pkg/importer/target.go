package importer

import "fmt"

// Target describes what an importer reads and where the weights are written.
type Target struct {
	Name        string
	File        string
	ContentType string
	Schema      Schema

	// Table holds the rows matched by slug.
	Table string
	// ParentTable and ParentKey are set when the weight column lives on a
	// parent row referenced by Table.ParentKey.
	ParentTable string
	ParentKey   string
}

func (t Target) HasParent() bool {
	return t.ParentTable != ""
}

// UpdateTable returns the table carrying the weight column.
func (t Target) UpdateTable() string {
	if t.HasParent() {
		return t.ParentTable
	}
	return t.Table
}

func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target name is required")
	}
	if t.File == "" {
		return fmt.Errorf("target '%s': file is required", t.Name)
	}
	if t.Table == "" {
		return fmt.Errorf("target '%s': table is required", t.Name)
	}
	if t.HasParent() && t.ParentKey == "" {
		return fmt.Errorf("target '%s': parent key is required with a parent table", t.Name)
	}
	return nil
}
