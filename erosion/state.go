package erosion

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var (
	ErrInvalidDimensions = errors.New("erosion: grid dimensions must be positive")
	ErrInvalidConfig     = errors.New("erosion: invalid configuration")
	ErrInvalidPaintMode  = errors.New("erosion: invalid paint mode")
	ErrDimensionsChanged = errors.New("erosion: height source dimensions changed")
)

// State is the runtime-tunable parameter set shared by every stage. The
// eroder keeps the pointer it was given, so edits take effect on the next
// step.
type State struct {
	IsRaining         bool `json:"isRaining"`
	UseThermalErosion bool `json:"useThermalErosion"`
	// Scale terrain brush strokes linearly by distance from the cursor.
	BrushFalloff bool `json:"brushFalloff"`
	// Clamp water depth and suspended sediment to zero after each stage.
	ClampNegative bool `json:"clampNegative"`
	// Cap each thermal transfer at half the excess height difference.
	LimitThermalTransfer bool `json:"limitThermalTransfer"`

	SimulationSpeed float32 `json:"simulationSpeed"`
	RainIntensity   float32 `json:"rainIntensity"`
	RainAmount      int     `json:"rainAmount"`
	EvaporationRate float32 `json:"evaporationRate"`

	FluidDensity          float32 `json:"fluidDensity"`
	GravitationalConstant float32 `json:"gravitationalConstant"`
	CellLength            float32 `json:"cellLength"`
	CellArea              float32 `json:"cellArea"`

	SedimentCapacity   float32 `json:"sedimentCapacity"`
	SoilSuspensionRate float32 `json:"soilSuspensionRate"`
	SoilDepositionRate float32 `json:"soilDepositionRate"`
	// Degrees.
	SlippageAngle float32 `json:"slippageAngle"`

	InitialWaterHeight float32 `json:"initialWaterHeight"`
}

func DefaultState() State {
	return State{
		IsRaining:             false,
		UseThermalErosion:     true,
		BrushFalloff:          false,
		ClampNegative:         true,
		LimitThermalTransfer:  true,
		SimulationSpeed:       1,
		RainIntensity:         1,
		RainAmount:            1,
		EvaporationRate:       0.02,
		FluidDensity:          1,
		GravitationalConstant: 9.81,
		CellLength:            1,
		CellArea:              1,
		SedimentCapacity:      0.1,
		SoilSuspensionRate:    0.5,
		SoilDepositionRate:    1,
		SlippageAngle:         45,
		InitialWaterHeight:    0.25,
	}
}

// Validate reports the first parameter that would make a step produce
// undefined numeric output. NaN and infinite values fail every check.
func (s *State) Validate() error {
	switch {
	case !positive(s.CellLength):
		return fmt.Errorf("%w: cell length %v must be positive", ErrInvalidConfig, s.CellLength)
	case !positive(s.CellArea):
		return fmt.Errorf("%w: cell area %v must be positive", ErrInvalidConfig, s.CellArea)
	case !positive(s.FluidDensity):
		return fmt.Errorf("%w: fluid density %v must be positive", ErrInvalidConfig, s.FluidDensity)
	case !positive(s.GravitationalConstant):
		return fmt.Errorf("%w: gravitational constant %v must be positive", ErrInvalidConfig, s.GravitationalConstant)
	case !positive(s.SimulationSpeed):
		return fmt.Errorf("%w: simulation speed %v must be positive", ErrInvalidConfig, s.SimulationSpeed)
	case !nonNegative(s.RainIntensity) || s.RainAmount < 0:
		return fmt.Errorf("%w: rain intensity %v and amount %d must not be negative", ErrInvalidConfig, s.RainIntensity, s.RainAmount)
	case !nonNegative(s.EvaporationRate):
		return fmt.Errorf("%w: evaporation rate %v must not be negative", ErrInvalidConfig, s.EvaporationRate)
	case !nonNegative(s.SedimentCapacity) || !nonNegative(s.SoilSuspensionRate) || !nonNegative(s.SoilDepositionRate):
		return fmt.Errorf("%w: sediment rates must not be negative", ErrInvalidConfig)
	case !(s.SlippageAngle >= 0 && s.SlippageAngle < 90):
		return fmt.Errorf("%w: slippage angle %v must be in [0, 90)", ErrInvalidConfig, s.SlippageAngle)
	case !nonNegative(s.InitialWaterHeight):
		return fmt.Errorf("%w: initial water height %v must not be negative", ErrInvalidConfig, s.InitialWaterHeight)
	}
	return nil
}

func positive(v float32) bool {
	return v > 0 && !math32.IsInf(v, 1)
}

func nonNegative(v float32) bool {
	return v >= 0 && !math32.IsInf(v, 1)
}
