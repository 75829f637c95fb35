package erosion

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/Erosion/utils"
)

type PaintMode int

const (
	PaintNone PaintMode = iota
	PaintWaterAdd
	PaintWaterRemove
	PaintTerrainAdd
	PaintTerrainRemove
)

var paintModeNames = map[PaintMode]string{
	PaintWaterAdd:      "water-add",
	PaintWaterRemove:   "water-remove",
	PaintTerrainAdd:    "terrain-add",
	PaintTerrainRemove: "terrain-remove",
}

func (m PaintMode) Valid() bool {
	_, ok := paintModeNames[m]
	return ok
}

func (m PaintMode) String() string {
	if name, ok := paintModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PaintMode(%d)", int(m))
}

func ParsePaintMode(name string) (PaintMode, error) {
	for mode, n := range paintModeNames {
		if n == name {
			return mode, nil
		}
	}
	return PaintNone, fmt.Errorf("%w: %q", ErrInvalidPaintMode, name)
}

// Brush is the interactive paint input. Cursor is a world-space position on
// the terrain plane, where cell (x, y) sits at (x*CellLength, y*CellLength).
type Brush struct {
	Active    bool
	Cursor    mgl32.Vec2
	Radius    float32
	Intensity float32
	Mode      PaintMode
}

// SetBrush replaces the brush applied on each step. An active brush must
// carry a valid mode.
func (t *CPUEroder) SetBrush(b Brush) error {
	if b.Active && !b.Mode.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidPaintMode, b.Mode)
	}
	if b.Active && (math32.IsNaN(b.Cursor.X()) || math32.IsNaN(b.Cursor.Y())) {
		return fmt.Errorf("%w: brush cursor %v", ErrInvalidConfig, b.Cursor)
	}
	if !nonNegative(b.Radius) || !nonNegative(b.Intensity) {
		return fmt.Errorf("%w: brush radius %v and intensity %v must not be negative",
			ErrInvalidConfig, b.Radius, b.Intensity)
	}
	t.brush = b
	return nil
}

func (t *CPUEroder) Brush() Brush {
	return t.brush
}

// rain adds water to a sparse random subset of cells. Each cell is wet
// with probability RainAmount/max(width, length), so larger grids get a
// lower per-cell chance but roughly the same number of drops per row.
func (t *CPUEroder) rain(dt float32) {
	var s = t.state
	if !s.IsRaining {
		return
	}
	var g = t.grid
	var chance = float32(s.RainAmount) / float32(max(g.width, g.length))
	var amount = dt * s.RainIntensity * s.SimulationSpeed
	for i := range g.WaterHeight {
		if t.rng.Float32() < chance {
			g.WaterHeight[i] += amount
		}
	}
}

func (t *CPUEroder) paint(dt float32) {
	var b = t.brush
	if !b.Active || b.Radius <= 0 {
		return
	}
	var g = t.grid
	var l = t.state.CellLength
	var x0 = max(0, int(math32.Floor((b.Cursor.X()-b.Radius)/l)))
	var x1 = min(g.width-1, int(math32.Ceil((b.Cursor.X()+b.Radius)/l)))
	var y0 = max(0, int(math32.Floor((b.Cursor.Y()-b.Radius)/l)))
	var y1 = min(g.length-1, int(math32.Ceil((b.Cursor.Y()+b.Radius)/l)))
	var amount = dt * b.Intensity

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			var dist = mgl32.Vec2{float32(x) * l, float32(y) * l}.Sub(b.Cursor).Len()
			if dist > b.Radius {
				continue
			}
			var i = utils.ToIndex(x, y, g.width)
			switch b.Mode {
			case PaintWaterAdd:
				g.WaterHeight[i] += amount
			case PaintWaterRemove:
				g.WaterHeight[i] = math32.Max(0, g.WaterHeight[i]-amount)
			case PaintTerrainAdd:
				g.Heightmap[i] += amount * t.falloff(dist, b.Radius)
			case PaintTerrainRemove:
				g.Heightmap[i] -= amount * t.falloff(dist, b.Radius)
			}
		}
	}
}

func (t *CPUEroder) falloff(dist, radius float32) float32 {
	if !t.state.BrushFalloff {
		return 1
	}
	return 1 - dist/radius
}

func (t *CPUEroder) evaporate(dt float32) {
	var g = t.grid
	var retained = 1 - t.state.SimulationSpeed*t.state.EvaporationRate*dt
	t.forEachRow(func(y int) {
		var row = g.WaterHeight[y*g.width : (y+1)*g.width]
		for x := range row {
			row[x] = t.clampMass(row[x] * retained)
		}
	})
}
