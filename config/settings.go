package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ob6160/Erosion/erosion"
)

type Settings struct {
	Simulation erosion.State   `json:"simulation"`
	Terrain    TerrainSettings `json:"terrain"`
	Server     ServerSettings  `json:"server"`
}

type TerrainSettings struct {
	// Power of two; the grid is Size+1 cells on each side.
	Size      int     `json:"size"`
	Seed      uint64  `json:"seed"`
	Spread    float32 `json:"spread"`
	Reduce    float32 `json:"reduce"`
	MinHeight float32 `json:"minHeight"`
	MaxHeight float32 `json:"maxHeight"`

	HardnessSeed      int64   `json:"hardnessSeed"`
	HardnessFrequency float64 `json:"hardnessFrequency"`
	// Zero disables the hardness field.
	HardnessScale float32 `json:"hardnessScale"`
}

type ServerSettings struct {
	Addr             string `json:"addr"`
	UpdateIntervalMs int    `json:"updateIntervalMs"`
	// Broadcast a snapshot every n frames.
	BroadcastEvery int `json:"broadcastEvery"`
	Workers        int `json:"workers"`
}

func Default() Settings {
	return Settings{
		Simulation: erosion.DefaultState(),
		Terrain: TerrainSettings{
			Size:              256,
			Seed:              1,
			Spread:            0.5,
			Reduce:            0.5,
			MinHeight:         0,
			MaxHeight:         32,
			HardnessSeed:      1,
			HardnessFrequency: 0.02,
			HardnessScale:     0,
		},
		Server: ServerSettings{
			Addr:             ":8080",
			UpdateIntervalMs: 16,
			BroadcastEvery:   6,
			Workers:          4,
		},
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Settings, error) {
	var settings = Default()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("No %s found, using defaults", path)
			return settings, nil
		}
		return settings, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&settings); err != nil {
		return settings, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

func (s Settings) Validate() error {
	if err := s.Simulation.Validate(); err != nil {
		return err
	}
	if s.Terrain.Size <= 0 || s.Terrain.Size&(s.Terrain.Size-1) != 0 {
		return fmt.Errorf("terrain size %d must be a positive power of two", s.Terrain.Size)
	}
	if s.Terrain.MaxHeight < s.Terrain.MinHeight {
		return fmt.Errorf("terrain height range [%v, %v] is inverted", s.Terrain.MinHeight, s.Terrain.MaxHeight)
	}
	if s.Server.UpdateIntervalMs <= 0 || s.Server.BroadcastEvery <= 0 {
		return fmt.Errorf("update interval %dms and broadcast period %d must be positive",
			s.Server.UpdateIntervalMs, s.Server.BroadcastEvery)
	}
	return nil
}

// Save writes the settings as indented JSON.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
