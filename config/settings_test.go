package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ob6160/Erosion/erosion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
	assert.NoError(t, settings.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"simulation": {"isRaining": true, "slippageAngle": 30},
		"terrain": {"size": 64, "seed": 9},
		"server": {"addr": ":9000"}
	}`), 0o644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.True(t, settings.Simulation.IsRaining)
	assert.Equal(t, float32(30), settings.Simulation.SlippageAngle)
	assert.Equal(t, float32(9.81), settings.Simulation.GravitationalConstant)
	assert.Equal(t, 64, settings.Terrain.Size)
	assert.Equal(t, uint64(9), settings.Terrain.Seed)
	assert.Equal(t, float32(0.5), settings.Terrain.Spread)
	assert.Equal(t, ":9000", settings.Server.Addr)
	assert.Equal(t, 16, settings.Server.UpdateIntervalMs)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"syntax":     `{"terrain": `,
		"size":       `{"terrain": {"size": 100}}`,
		"cellLength": `{"simulation": {"cellLength": 0}}`,
		"range":      `{"terrain": {"minHeight": 5, "maxHeight": 1}}`,
		"interval":   `{"server": {"updateIntervalMs": 0}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadWrapsStateErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"simulation": {"slippageAngle": 90}}`), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, erosion.ErrInvalidConfig)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	var settings = Default()
	settings.Terrain.Seed = 42
	settings.Simulation.UseThermalErosion = false
	require.NoError(t, settings.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}
