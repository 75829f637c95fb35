package erosion

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluxSingleCell(t *testing.T) {
	var state = DefaultState()
	e := newTestEroder(t, flatSource(1, 1, 3), &state)
	g := e.Grid()
	g.WaterHeight[0] = 1

	e.updateOutflowFlux(1)
	assert.Equal(t, mgl32.Vec4{}, g.OutflowFlux[0])

	e.updateWaterHeight(1)
	assert.Equal(t, float32(1), g.WaterHeight[0])
	assert.Equal(t, mgl32.Vec2{}, g.Velocity[0])
}

func TestFluxTwoCells(t *testing.T) {
	var state = DefaultState()
	e := newTestEroder(t, flatSource(2, 1, 0), &state)
	g := e.Grid()
	copy(g.WaterHeight, []float32{1, 0})

	e.updateOutflowFlux(0.1)
	assert.InDelta(t, 0.981, g.OutflowFlux[0][Right], 1e-5)
	assert.Equal(t, float32(0), g.OutflowFlux[0][Left])
	assert.Equal(t, mgl32.Vec4{}, g.OutflowFlux[1], "a pipe never pulls")

	e.updateWaterHeight(0.1)
	assert.InDelta(t, 0.9019, g.WaterHeight[0], 1e-5)
	assert.InDelta(t, 0.0981, g.WaterHeight[1], 1e-5)
	assert.InDelta(t, 0.4905*0.95095, g.Velocity[0].X(), 1e-5)
	assert.InDelta(t, 0.4905*0.04905, g.Velocity[1].X(), 1e-5)
	assert.Equal(t, float32(0), g.Velocity[0].Y())
}

func TestFluxBoundaryAndSign(t *testing.T) {
	var state = DefaultState()
	e := newTestEroder(t, bumpySource(5, 4, 7), &state)
	g := e.Grid()
	fillWater(g, 0.5)

	for step := 0; step < 5; step++ {
		e.updateOutflowFlux(0.05)
		for y := 0; y < 4; y++ {
			for x := 0; x < 5; x++ {
				i, _ := g.Index(x, y)
				for _, dir := range Directions {
					assert.GreaterOrEqual(t, g.OutflowFlux[i][dir], float32(0))
					if _, ok := g.Neighbour(x, y, dir); !ok {
						assert.Equal(t, float32(0), g.OutflowFlux[i][dir],
							"cell (%d,%d) has flux across the %v edge", x, y, dir)
					}
				}
			}
		}
		e.updateWaterHeight(0.05)
	}

	c, _ := g.Get(0, 0)
	assert.Equal(t, float32(0), c.OutflowFlux[Left])
	assert.Equal(t, float32(0), c.OutflowFlux[Top])
}

func TestFluxNeverDrainsMoreThanHeld(t *testing.T) {
	tests := []struct {
		dt    float32
		depth float32
	}{
		{1, 0.1},
		{0.5, 0.01},
		{0.02, 2},
		{3, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			var state = DefaultState()
			src := flatSource(3, 3, 0)
			src.heights[4] = 10
			e := newTestEroder(t, src, &state)
			g := e.Grid()
			fillWater(g, tt.depth)

			e.updateOutflowFlux(tt.dt)
			for i, f := range g.OutflowFlux {
				var total = f[0] + f[1] + f[2] + f[3]
				assert.LessOrEqual(t, tt.dt*total, g.WaterHeight[i]*state.CellArea+1e-5)
			}

			e.updateWaterHeight(tt.dt)
			for _, d := range g.WaterHeight {
				assert.GreaterOrEqual(t, d, float32(0))
			}
		})
	}
}

func TestFluxConservesWater(t *testing.T) {
	var state = DefaultState()
	e := newTestEroder(t, bumpySource(6, 6, 3), &state)
	g := e.Grid()
	fillWater(g, 0.3)
	before := g.Totals().Water

	for step := 0; step < 20; step++ {
		e.updateOutflowFlux(0.02)
		e.updateWaterHeight(0.02)
	}
	assert.InDelta(t, before, g.Totals().Water, 1e-4)
}

func TestScaleVelocity(t *testing.T) {
	var v = mgl32.Vec2{2, -4}
	tests := []struct {
		depth float32
		want  mgl32.Vec2
	}{
		{0, mgl32.Vec2{}},
		{-1, mgl32.Vec2{}},
		{0.5, mgl32.Vec2{1, -2}},
		{1, mgl32.Vec2{2, -4}},
		{4, mgl32.Vec2{0.5, -1}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.depth), func(t *testing.T) {
			got := scaleVelocity(v, tt.depth)
			require.False(t, got.X() != got.X(), "NaN velocity")
			assert.InDelta(t, tt.want.X(), got.X(), 1e-6)
			assert.InDelta(t, tt.want.Y(), got.Y(), 1e-6)
		})
	}
}
