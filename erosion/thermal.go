package erosion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/Erosion/utils"
)

// thermalErosion slides terrain from a cell to any neighbour it stands more
// than the talus height above. Each cell gathers what it sends and receives
// from the pre-pass heights, so the result does not depend on visit order.
//
// The explicit update is not unconditionally stable for large dt; with
// LimitThermalTransfer set, each pairwise transfer is capped at half the
// excess.
func (t *CPUEroder) thermalErosion(dt float32) {
	var g = t.grid
	var talus = t.state.CellLength * math32.Tan(mgl32.DegToRad(t.state.SlippageAngle))
	var next = t.swap.Heightmap

	t.forEachRow(func(y int) {
		for x := 0; x < g.width; x++ {
			var i = utils.ToIndex(x, y, g.width)
			var height = g.Heightmap[i]
			var delta float32
			for _, dir := range Directions {
				n, ok := g.Neighbour(x, y, dir)
				if !ok {
					continue
				}
				var dh = height - g.Heightmap[n]
				switch {
				case dh > talus:
					delta -= t.slippage(dh-talus, dt)
				case -dh > talus:
					delta += t.slippage(-dh-talus, dt)
				}
			}
			next[i] = height + delta
		}
	})

	g.Heightmap, t.swap.Heightmap = t.swap.Heightmap, g.Heightmap
}

func (t *CPUEroder) slippage(excess, dt float32) float32 {
	var amount = dt * excess
	if t.state.LimitThermalTransfer {
		amount = math32.Min(amount, excess/2)
	}
	return amount
}
