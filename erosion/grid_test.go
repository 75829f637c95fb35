package erosion

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		width, length int
	}{
		{0, 1},
		{1, 0},
		{-1, 3},
		{0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			_, err := NewGrid(tt.width, tt.length)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}

func TestGetOutOfBounds(t *testing.T) {
	g, err := NewGrid(3, 2)
	require.NoError(t, err)

	for _, pt := range [][2]int{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
		_, ok := g.Get(pt[0], pt[1])
		assert.False(t, ok, "expected no cell at %v", pt)
	}
	_, ok := g.Get(2, 1)
	assert.True(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	require.True(t, g.SetWaterHeight(1, 1, 2))

	c, ok := g.Get(1, 1)
	require.True(t, ok)
	assert.Equal(t, float32(2), c.WaterHeight)

	c.WaterHeight = 9
	c, _ = g.Get(1, 1)
	assert.Equal(t, float32(2), c.WaterHeight, "snapshot writes must not reach the grid")
}

func TestSettersOutOfBounds(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	assert.False(t, g.SetTerrainHeight(2, 0, 1))
	assert.False(t, g.SetWaterHeight(0, -1, 1))
	assert.False(t, g.SetSuspendedSediment(5, 5, 1))
	assert.False(t, g.SetHardness(-1, 0, 1))
	assert.True(t, g.SetHardness(1, 1, 0.5))
	assert.Equal(t, float32(0.5), g.Hardness[3])
}

func TestNeighbourCounts(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	count := func(x, y int) int {
		var n int
		for _, dir := range Directions {
			if _, ok := g.Neighbour(x, y, dir); ok {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 2, count(0, 0))
	assert.Equal(t, 3, count(1, 0))
	assert.Equal(t, 4, count(1, 1))
	assert.Equal(t, 2, count(2, 2))

	single, err := NewGrid(1, 1)
	require.NoError(t, err)
	for _, dir := range Directions {
		_, ok := single.Neighbour(0, 0, dir)
		assert.False(t, ok, dir.String())
	}
}

func TestNeighbourIndex(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	tests := []struct {
		dir  Direction
		want int
	}{
		{Left, 3},
		{Right, 5},
		{Top, 1},
		{Bottom, 7},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			n, ok := g.Neighbour(1, 1, tt.dir)
			require.True(t, ok)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.dir, tt.dir.Opposite().Opposite())
		})
	}
}

func TestTotalsAndStats(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	copy(g.Heightmap, []float32{1, 2, 3, 4})
	copy(g.WaterHeight, []float32{0, 0.5, 0.5, 1})
	copy(g.SuspendedSediment, []float32{0.25, 0, 0, 0})

	totals := g.Totals()
	assert.InDelta(t, 10, totals.Terrain, 1e-9)
	assert.InDelta(t, 2, totals.Water, 1e-9)
	assert.InDelta(t, 0.25, totals.Sediment, 1e-9)
	assert.InDelta(t, 12.25, totals.Sum(), 1e-9)

	stats := g.Stats()
	assert.Equal(t, Range{Min: 1, Max: 4, Mean: 2.5}, stats.Terrain)
	assert.Equal(t, Range{Min: 0, Max: 1, Mean: 0.5}, stats.Water)
}
