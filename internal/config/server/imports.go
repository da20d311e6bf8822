package server

// ImportServerConfig describes one weight import: the source file, the schema used
// to validate it and the table (or parent table) receiving the weights.
type ImportServerConfig struct {
	Name        string   `mapstructure:"name"         yaml:"name"`
	File        string   `mapstructure:"file"         yaml:"file"`
	ContentType string   `mapstructure:"content_type" yaml:"content_type"`
	Schema      string   `mapstructure:"schema"       yaml:"schema"`
	Table       string   `mapstructure:"table"        yaml:"table"`
	ParentTable string   `mapstructure:"parent_table" yaml:"parent_table,omitempty"`
	ParentKey   string   `mapstructure:"parent_key"   yaml:"parent_key,omitempty"`
	DependsOn   []string `mapstructure:"depends_on"   yaml:"depends_on,omitempty"`
}
