package erosion

import "github.com/go-gl/mathgl/mgl32"

// Snapshot is a read-only copy of the fields a mesh or viewer needs after a
// step.
type Snapshot struct {
	Width             int          `json:"width"`
	Length            int          `json:"length"`
	Iteration         int          `json:"iteration"`
	Heightmap         []float32    `json:"heightmap"`
	WaterHeight       []float32    `json:"waterHeight"`
	SuspendedSediment []float32    `json:"suspendedSediment"`
	Velocity          []mgl32.Vec2 `json:"velocity"`
}

func (t *CPUEroder) Snapshot() Snapshot {
	var g = t.grid
	return Snapshot{
		Width:             g.width,
		Length:            g.length,
		Iteration:         t.iterations,
		Heightmap:         append([]float32(nil), g.Heightmap...),
		WaterHeight:       append([]float32(nil), g.WaterHeight...),
		SuspendedSediment: append([]float32(nil), g.SuspendedSediment...),
		Velocity:          append([]mgl32.Vec2(nil), g.Velocity...),
	}
}
