package erosion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/Erosion/utils"
)

// updateOutflowFlux computes the pipe flux for every cell into the swap
// buffer and only then makes it current, so no cell sees a neighbour's
// updated flux mid-pass.
func (t *CPUEroder) updateOutflowFlux(dt float32) {
	var g = t.grid
	var next = t.swap.OutflowFlux
	var scale = dt * t.state.SimulationSpeed * t.state.CellArea

	t.forEachRow(func(y int) {
		for x := 0; x < g.width; x++ {
			var i = utils.ToIndex(x, y, g.width)
			next[i] = t.cellOutflow(x, y, i, dt, scale)
		}
	})

	g.OutflowFlux, t.swap.OutflowFlux = t.swap.OutflowFlux, g.OutflowFlux
}

func (t *CPUEroder) cellOutflow(x, y, i int, dt, scale float32) mgl32.Vec4 {
	var g = t.grid
	var s = t.state
	var currentHeight = g.Heightmap[i] + g.WaterHeight[i]

	var flux mgl32.Vec4
	var sumFluxOut float32
	for _, dir := range Directions {
		// Edge pipes stay closed.
		n, ok := g.Neighbour(x, y, dir)
		if !ok {
			continue
		}
		var heightDiff = currentHeight - (g.Heightmap[n] + g.WaterHeight[n])
		var pressure = s.FluidDensity * s.GravitationalConstant * heightDiff
		var acceleration = pressure / (s.FluidDensity * s.CellLength)
		flux[dir] = math32.Max(0, g.OutflowFlux[i][dir]+scale*acceleration)
		sumFluxOut += flux[dir]
	}

	// Find k
	var k float32 = 1
	if out := dt * sumFluxOut; out > 0 {
		k = math32.Min(1, g.WaterHeight[i]*s.CellArea/out)
	}
	for dir := range flux {
		flux[dir] = math32.Max(0, flux[dir]*k)
	}
	return flux
}
