package coordinates

import (
	"encoding/json"
	"fmt"
	"os"

	"aqi-api/internal/domain/entity"
	"aqi-api/pkg/log"
)

// Load reads the coordinate table from a JSON file of the form
// {"City_Country": {"lat": ..., "lon": ...}, ...}
func Load(path string) (entity.CoordinateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coordinate file %s: %w", path, err)
	}

	var table entity.CoordinateTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse coordinate file %s: %w", path, err)
	}

	log.Infof("Loaded %d city coordinate entries from %s", len(table), path)
	return table, nil
}
