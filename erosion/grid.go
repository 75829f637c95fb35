package erosion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/Erosion/utils"
	"gonum.org/v1/gonum/floats"
)

// Direction names one of the four pipes leaving a cell. The order matches
// the components of an outflow flux vector: L=0, R=1, T=2, B=3.
type Direction int

const (
	Left Direction = iota
	Right
	Top
	Bottom
)

var Directions = [4]Direction{Left, Right, Top, Bottom}

func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	default:
		return Top
	}
}

func (d Direction) offset() (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Top:
		return 0, -1
	default:
		return 0, 1
	}
}

func (d Direction) String() string {
	return [...]string{"left", "right", "top", "bottom"}[d]
}

// LayerData holds one flat buffer per simulated field, indexed y*width+x.
type LayerData struct {
	Heightmap         []float32
	WaterHeight       []float32
	SuspendedSediment []float32
	OutflowFlux       []mgl32.Vec4
	Velocity          []mgl32.Vec2
	Hardness          []float32
}

func newLayerData(cells int) *LayerData {
	return &LayerData{
		Heightmap:         make([]float32, cells),
		WaterHeight:       make([]float32, cells),
		SuspendedSediment: make([]float32, cells),
		OutflowFlux:       make([]mgl32.Vec4, cells),
		Velocity:          make([]mgl32.Vec2, cells),
		Hardness:          make([]float32, cells),
	}
}

// zero clears every buffer in place.
func (l *LayerData) zero() {
	clear(l.Heightmap)
	clear(l.WaterHeight)
	clear(l.SuspendedSediment)
	clear(l.OutflowFlux)
	clear(l.Velocity)
	clear(l.Hardness)
}

// Cell is a copy of every field at one coordinate. Writing to it does not
// touch the grid.
type Cell struct {
	TerrainHeight     float32
	WaterHeight       float32
	SuspendedSediment float32
	OutflowFlux       mgl32.Vec4
	Velocity          mgl32.Vec2
	Hardness          float32
}

type Grid struct {
	width, length int
	LayerData
}

func NewGrid(width, length int) (*Grid, error) {
	if width <= 0 || length <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, length)
	}
	return &Grid{
		width:     width,
		length:    length,
		LayerData: *newLayerData(width * length),
	}, nil
}

func (g *Grid) Dimensions() (int, int) {
	return g.width, g.length
}

func (g *Grid) Len() int {
	return g.width * g.length
}

func (g *Grid) Index(x, y int) (int, bool) {
	if !utils.WithinBounds(x, y, g.width, g.length) {
		return 0, false
	}
	return utils.ToIndex(x, y, g.width), true
}

func (g *Grid) Get(x, y int) (Cell, bool) {
	i, ok := g.Index(x, y)
	if !ok {
		return Cell{}, false
	}
	return Cell{
		TerrainHeight:     g.Heightmap[i],
		WaterHeight:       g.WaterHeight[i],
		SuspendedSediment: g.SuspendedSediment[i],
		OutflowFlux:       g.OutflowFlux[i],
		Velocity:          g.Velocity[i],
		Hardness:          g.Hardness[i],
	}, true
}

// Neighbour returns the flat index of the cell next to (x, y) in direction
// dir, or false when that would cross the grid edge.
func (g *Grid) Neighbour(x, y int, dir Direction) (int, bool) {
	dx, dy := dir.offset()
	return g.Index(x+dx, y+dy)
}

func (g *Grid) set(field []float32, x, y int, v float32) bool {
	i, ok := g.Index(x, y)
	if ok {
		field[i] = v
	}
	return ok
}

func (g *Grid) SetTerrainHeight(x, y int, v float32) bool {
	return g.set(g.Heightmap, x, y, v)
}

func (g *Grid) SetWaterHeight(x, y int, v float32) bool {
	return g.set(g.WaterHeight, x, y, v)
}

func (g *Grid) SetSuspendedSediment(x, y int, v float32) bool {
	return g.set(g.SuspendedSediment, x, y, v)
}

func (g *Grid) SetHardness(x, y int, v float32) bool {
	return g.set(g.Hardness, x, y, v)
}

// Totals are grid-wide sums of the three mass-carrying fields.
type Totals struct {
	Terrain, Water, Sediment float64
}

func (t Totals) Sum() float64 {
	return t.Terrain + t.Water + t.Sediment
}

// Range summarises one field.
type Range struct {
	Min, Max, Mean float64
}

type Stats struct {
	Terrain, Water Range
}

func widen(src []float32, dst []float64) []float64 {
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

func (g *Grid) Totals() Totals {
	var buf = make([]float64, g.Len())
	return Totals{
		Terrain:  floats.Sum(widen(g.Heightmap, buf)),
		Water:    floats.Sum(widen(g.WaterHeight, buf)),
		Sediment: floats.Sum(widen(g.SuspendedSediment, buf)),
	}
}

func (g *Grid) Stats() Stats {
	var buf = make([]float64, g.Len())
	var n = float64(len(buf))
	var rangeOf = func(field []float32) Range {
		widen(field, buf)
		return Range{Min: floats.Min(buf), Max: floats.Max(buf), Mean: floats.Sum(buf) / n}
	}
	return Stats{
		Terrain: rangeOf(g.Heightmap),
		Water:   rangeOf(g.WaterHeight),
	}
}
