package erosion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/Erosion/utils"
)

// Caps the slope term so near-vertical cells do not get unbounded capacity.
const maxTiltSine = 0.05

var up = mgl32.Vec3{0, 1, 0}

// updateSediment moves material between the terrain and the suspended
// sediment towards each cell's transport capacity. New terrain heights go to
// the swap buffer because the normal provider reads neighbouring heights.
func (t *CPUEroder) updateSediment(dt float32) {
	var g = t.grid
	var s = t.state
	var next = t.swap.Heightmap

	t.forEachRow(func(y int) {
		for x := 0; x < g.width; x++ {
			var i = utils.ToIndex(x, y, g.width)
			var normal = t.normals.NormalAt(x, y)
			var tiltAngle = math32.Acos(utils.Clamp(normal.Dot(up), -1, 1))
			var carryCapacity = g.Velocity[i].Len() * s.SedimentCapacity * math32.Min(math32.Sin(tiltAngle), maxTiltSine)

			var height = g.Heightmap[i]
			var sediment = g.SuspendedSediment[i]
			if sediment < carryCapacity {
				var delta = s.SoilSuspensionRate * dt * (carryCapacity - sediment) * (1 - g.Hardness[i])
				height -= delta
				sediment += delta
			} else {
				var delta = math32.Min(sediment, s.SoilDepositionRate*dt*(sediment-carryCapacity))
				height += delta
				sediment -= delta
			}
			next[i] = height
			g.SuspendedSediment[i] = t.clampMass(sediment)
		}
	})

	g.Heightmap, t.swap.Heightmap = t.swap.Heightmap, g.Heightmap
}

// advectSediment moves suspended sediment along the velocity field by
// tracing each cell back to the cell its water came from.
func (t *CPUEroder) advectSediment(dt float32) {
	var g = t.grid
	var next = t.swap.SuspendedSediment

	t.forEachRow(func(y int) {
		for x := 0; x < g.width; x++ {
			var i = utils.ToIndex(x, y, g.width)
			var vel = g.Velocity[i]
			next[i] = g.SuspendedSediment[i]

			sx, okX := roundAway(float32(x) - vel.X()*dt)
			sy, okY := roundAway(float32(y) - vel.Y()*dt)
			if !okX || !okY {
				continue
			}
			if src, ok := g.Index(sx, sy); ok {
				next[i] = g.SuspendedSediment[src]
			}
		}
	})

	g.SuspendedSediment, t.swap.SuspendedSediment = t.swap.SuspendedSediment, g.SuspendedSediment
}

// roundAway rounds v to the integer further from zero. It reports false for
// values no grid could index.
func roundAway(v float32) (int, bool) {
	if math32.IsNaN(v) || math32.Abs(v) > 1<<30 {
		return 0, false
	}
	if v < 0 {
		return int(math32.Floor(v)), true
	}
	return int(math32.Ceil(v)), true
}
