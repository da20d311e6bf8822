package importer

import (
	"os"

	"github.com/mwantia/goweight/pkg/log"
	"gopkg.in/yaml.v3"
)

// Load parses the YAML file at path into a generic structure. Read and parse
// failures are logged and produce an empty list, so the import continues and
// resets every weight to zero.
func Load(path string, logger log.LoggerService) any {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Error loading YAML data: %v", err)
		return []any{}
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		logger.Error("Error loading YAML data: %v", err)
		return []any{}
	}

	return raw
}
