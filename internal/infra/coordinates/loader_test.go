package coordinates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "city_coordinates.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesCoordinateTable(t *testing.T) {
	path := writeTempFile(t, `{
		"Delhi_India": {"lat": 28.6139, "lon": 77.209},
		"Unknown_Place": {"lat": null, "lon": null}
	}`)

	table, err := Load(path)

	require.NoError(t, err)
	require.Len(t, table, 2)

	delhi := table["Delhi_India"]
	require.NotNil(t, delhi.Lat)
	assert.Equal(t, 28.6139, *delhi.Lat)

	unknown := table["Unknown_Place"]
	assert.Nil(t, unknown.Lat)
	assert.Nil(t, unknown.Lon)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))

	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeTempFile(t, `{"Delhi_India": `)

	_, err := Load(path)

	assert.Error(t, err)
}
