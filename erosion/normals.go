package erosion

import "github.com/go-gl/mathgl/mgl32"

// NormalProvider returns the unit surface normal (Y up) at a cell.
type NormalProvider interface {
	NormalAt(x, y int) mgl32.Vec3
}

// HeightNormals derives normals from the grid's current terrain heights
// using central differences. Edge cells reuse their own height for the
// missing neighbour.
type HeightNormals struct {
	Grid       *Grid
	CellLength float32
}

func (h *HeightNormals) NormalAt(x, y int) mgl32.Vec3 {
	var g = h.Grid
	i, ok := g.Index(x, y)
	if !ok || h.CellLength <= 0 {
		return up
	}
	var centralValue = g.Heightmap[i]
	var heightAt = func(dir Direction) float32 {
		if n, ok := g.Neighbour(x, y, dir); ok {
			return g.Heightmap[n]
		}
		return centralValue
	}

	var span = 2 * h.CellLength
	var dxv = mgl32.Vec3{span, heightAt(Right) - heightAt(Left), 0}
	var dzv = mgl32.Vec3{0, heightAt(Bottom) - heightAt(Top), span}
	return dzv.Cross(dxv).Normalize()
}
