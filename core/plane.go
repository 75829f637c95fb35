package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/Erosion/utils"
)

var up = mgl32.Vec3{0, 1, 0}

// Plane is a regular grid mesh over the terrain, one vertex per cell at
// (x*l, height, y*l). It serves per-vertex normals to the sediment stage.
type Plane struct {
	rows, cols int
	cellLength float32
	m          Mesh
}

func (p *Plane) M() *Mesh {
	return &p.m
}

func NewPlane(rows, cols int, cellLength float32) (*Plane, error) {
	if rows <= 0 || cols <= 0 || cellLength <= 0 {
		return nil, fmt.Errorf("core: invalid %dx%d plane with cell length %v", cols, rows, cellLength)
	}
	var newPlane = Plane{rows: rows, cols: cols, cellLength: cellLength, m: Mesh{
		Vertices: make([]float32, rows*cols*stride),
		Indices:  make([]uint32, max(rows-1, 0)*max(cols-1, 0)*3*2),
	}}

	var indices = newPlane.m.Indices
	var i = 0
	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			index := r*cols + c
			indices[i] = uint32(index + cols + 1)
			indices[i+1] = uint32(index + 1)
			indices[i+2] = uint32(index)

			indices[i+3] = uint32(index + cols)
			indices[i+4] = uint32(index + cols + 1)
			indices[i+5] = uint32(index)
			i += 6
		}
	}
	return &newPlane, nil
}

// Construct moves every vertex to the given row-major heights and
// recomputes the normals.
func (p *Plane) Construct(heights []float32) error {
	if len(heights) != p.rows*p.cols {
		return fmt.Errorf("core: %d heights for a %dx%d plane", len(heights), p.cols, p.rows)
	}
	var l = p.cellLength
	for y := 0; y < p.rows; y++ {
		for x := 0; x < p.cols; x++ {
			i := utils.ToIndex(x, y, p.cols)
			p.m.setPosition(i, mgl32.Vec3{float32(x) * l, heights[i], float32(y) * l})
		}
	}
	p.recalculateNormals()
	return nil
}

// Border vertices keep an upright normal.
func (p *Plane) recalculateNormals() {
	for y := 0; y < p.rows; y++ {
		for x := 0; x < p.cols; x++ {
			i := utils.ToIndex(x, y, p.cols)
			if x == 0 || y == 0 || x == p.cols-1 || y == p.rows-1 {
				p.m.setNormal(i, up)
				continue
			}
			centre := p.m.Position(i)
			right := p.m.Position(i + 1).Sub(centre).Normalize()
			below := p.m.Position(i + p.cols).Sub(centre).Normalize()
			left := p.m.Position(i - 1).Sub(centre).Normalize()
			above := p.m.Position(i - p.cols).Sub(centre).Normalize()

			normal := below.Cross(right).
				Add(left.Cross(below)).
				Add(above.Cross(left)).
				Add(right.Cross(above))
			p.m.setNormal(i, normal.Normalize())
		}
	}
}

// NormalAt returns the vertex normal of cell (x, y), or straight up off
// the plane.
func (p *Plane) NormalAt(x, y int) mgl32.Vec3 {
	if !utils.WithinBounds(x, y, p.cols, p.rows) {
		return up
	}
	return p.m.Normal(utils.ToIndex(x, y, p.cols))
}
