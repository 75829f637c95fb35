package erosion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/Erosion/utils"
)

// updateWaterHeight applies the continuity equation to the finished flux
// field and derives the surface velocity of every cell.
func (t *CPUEroder) updateWaterHeight(dt float32) {
	var g = t.grid
	var s = t.state
	var next = t.swap.WaterHeight

	t.forEachRow(func(y int) {
		for x := 0; x < g.width; x++ {
			var i = utils.ToIndex(x, y, g.width)
			var outflow = g.OutflowFlux[i]

			// Right pipe of the left neighbour, left pipe of the right
			// neighbour, and so on.
			var inflow mgl32.Vec4
			for _, dir := range Directions {
				if n, ok := g.Neighbour(x, y, dir); ok {
					inflow[dir] = g.OutflowFlux[n][dir.Opposite()]
				}
			}

			var inFlow = inflow[Left] + inflow[Right] + inflow[Top] + inflow[Bottom]
			var outFlow = outflow[Left] + outflow[Right] + outflow[Top] + outflow[Bottom]

			var current = g.WaterHeight[i]
			var water = t.clampMass(current + dt*(inFlow-outFlow)/s.CellArea)
			next[i] = water

			var velX = ((inflow[Left] - outflow[Left]) + (outflow[Right] - inflow[Right])) / 2 / s.CellLength
			var velY = ((inflow[Top] - outflow[Top]) + (outflow[Bottom] - inflow[Bottom])) / 2 / s.CellLength
			g.Velocity[i] = scaleVelocity(mgl32.Vec2{velX, velY}, (current+water)/2)
		}
	})

	g.WaterHeight, t.swap.WaterHeight = t.swap.WaterHeight, g.WaterHeight
}

// scaleVelocity damps flow in shallow cells by multiplying with the mean
// depth, and divides by it once the cell is at least one unit deep.
func scaleVelocity(v mgl32.Vec2, averageDepth float32) mgl32.Vec2 {
	switch {
	case averageDepth <= 0:
		return mgl32.Vec2{}
	case averageDepth < 1:
		return v.Mul(averageDepth)
	default:
		return v.Mul(1 / averageDepth)
	}
}
