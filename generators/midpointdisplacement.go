package generators

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/ob6160/Erosion/utils"
)

var ErrInvalidSize = errors.New("generators: size must be a positive power of two")

// MidpointDisplacement builds a (size+1)x(size+1) height field by recursive
// square subdivision, jittering each new midpoint by a spread that shrinks
// by reduce at every level.
type MidpointDisplacement struct {
	width, height int
	heightmap     []float32
	filled        []bool

	spread, reduce       float32
	minHeight, maxHeight float32

	seed uint64
	rng  *rand.Rand
}

func NewMidPointDisplacement(size int, seed uint64) (*MidpointDisplacement, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	var cells = (size + 1) * (size + 1)
	return &MidpointDisplacement{
		width:     size + 1,
		height:    size + 1,
		heightmap: make([]float32, cells),
		filled:    make([]bool, cells),
		spread:    0.5,
		reduce:    0.5,
		minHeight: 0,
		maxHeight: 1,
		seed:      seed,
	}, nil
}

// SetHeightRange sets the range Generate normalises into.
func (m *MidpointDisplacement) SetHeightRange(minHeight, maxHeight float32) {
	m.minHeight, m.maxHeight = minHeight, maxHeight
}

func (m *MidpointDisplacement) Seed() uint64 {
	return m.seed
}

func (m *MidpointDisplacement) Heightmap() []float32 {
	return m.heightmap
}

func (m *MidpointDisplacement) Dimensions() (int, int) {
	return m.width, m.height
}

func (m *MidpointDisplacement) Sample(x, y int) float32 {
	if !utils.WithinBounds(x, y, m.width, m.height) {
		return 0
	}
	return m.heightmap[utils.ToIndex(x, y, m.width)]
}

// Reseed draws a fresh seed from the current one and regenerates with the
// last spread and reduce.
func (m *MidpointDisplacement) Reseed() {
	var rng = rand.New(rand.NewPCG(m.seed, m.seed>>1))
	m.seed = rng.Uint64()
	m.Generate(m.spread, m.reduce)
}

func (m *MidpointDisplacement) set(p utils.Point, value float32) {
	var i = p.ToIndex(m.width)
	m.heightmap[i] = value
	m.filled[i] = true
}

func (m *MidpointDisplacement) get(p utils.Point) float32 {
	return m.heightmap[p.ToIndex(m.width)]
}

func (m *MidpointDisplacement) normalize() {
	var maxValue = math32.Inf(-1)
	var minValue = math32.Inf(1)
	for _, h := range m.heightmap {
		maxValue = math32.Max(maxValue, h)
		minValue = math32.Min(minValue, h)
	}
	diff := maxValue - minValue

	for i, h := range m.heightmap {
		if diff == 0 {
			m.heightmap[i] = m.minHeight
			continue
		}
		m.heightmap[i] = m.minHeight + (h-minValue)/diff*(m.maxHeight-m.minHeight)
	}
}

// Generate rebuilds the height field from the current seed. The same seed,
// spread and reduce always produce the same terrain.
func (m *MidpointDisplacement) Generate(spread, reduce float32) {
	m.spread, m.reduce = spread, reduce
	m.rng = rand.New(rand.NewPCG(m.seed, m.seed^0xda3e39cb94b95bdb))
	for i := range m.heightmap {
		m.heightmap[i] = 0
		m.filled[i] = false
	}
	// Set all four corners to random values
	topLeft := utils.Point{X: 0, Y: 0}
	topRight := utils.Point{X: m.width - 1, Y: 0}
	bottomLeft := utils.Point{X: 0, Y: m.height - 1}
	bottomRight := utils.Point{X: m.width - 1, Y: m.height - 1}
	m.set(topLeft, m.rng.Float32())
	m.set(topRight, m.rng.Float32())
	m.set(bottomLeft, m.rng.Float32())
	m.set(bottomRight, m.rng.Float32())
	m.displace(topLeft, topRight, bottomLeft, bottomRight, spread, reduce)
	m.normalize()
}

func (m *MidpointDisplacement) displace(tl, tr, bl, br utils.Point, spread, reduce float32) {
	if tr.X-tl.X < 2 {
		return
	}
	topMid := utils.Midpoint(tl, tr)
	leftMid := utils.Midpoint(tl, bl)
	rightMid := utils.Midpoint(tr, br)
	bottomMid := utils.Midpoint(bl, br)
	centre := utils.Midpoint(leftMid, rightMid)

	// Edge midpoints are shared with the neighbouring square.
	m.fill(topMid, spread, tl, tr)
	m.fill(leftMid, spread, tl, bl)
	m.fill(rightMid, spread, tr, br)
	m.fill(bottomMid, spread, bl, br)
	m.fill(centre, spread, topMid, leftMid, rightMid, bottomMid)

	next := spread * reduce
	m.displace(tl, topMid, leftMid, centre, next, reduce)
	m.displace(topMid, tr, centre, rightMid, next, reduce)
	m.displace(leftMid, centre, bl, bottomMid, next, reduce)
	m.displace(centre, rightMid, bottomMid, br, next, reduce)
}

func (m *MidpointDisplacement) fill(p utils.Point, spread float32, from ...utils.Point) {
	if m.filled[p.ToIndex(m.width)] {
		return
	}
	var heights = make([]float32, len(from))
	for i, q := range from {
		heights[i] = m.get(q)
	}
	m.set(p, utils.Jitter(m.rng, utils.Average(heights...), spread))
}
