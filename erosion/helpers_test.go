package erosion

import (
	"io"
	"log"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type sampleSource struct {
	width, length int
	heights       []float32
	reseeds       int
}

func (s *sampleSource) Dimensions() (int, int) {
	return s.width, s.length
}

func (s *sampleSource) Sample(x, y int) float32 {
	return s.heights[y*s.width+x]
}

func (s *sampleSource) Reseed() {
	s.reseeds++
	for i := range s.heights {
		s.heights[i]++
	}
}

func flatSource(width, length int, height float32) *sampleSource {
	var heights = make([]float32, width*length)
	for i := range heights {
		heights[i] = height
	}
	return &sampleSource{width: width, length: length, heights: heights}
}

func bumpySource(width, length int, seed uint64) *sampleSource {
	var rng = rand.New(rand.NewPCG(seed, 1))
	var src = flatSource(width, length, 0)
	for i := range src.heights {
		src.heights[i] = rng.Float32() * 10
	}
	return src
}

type fixedNormals mgl32.Vec3

func (n fixedNormals) NormalAt(x, y int) mgl32.Vec3 {
	return mgl32.Vec3(n)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestEroder(t *testing.T, src HeightSource, state *State, opts ...Option) *CPUEroder {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	e, err := NewCPUEroder(src, state, opts...)
	require.NoError(t, err)
	return e
}

func fillWater(g *Grid, depth float32) {
	for i := range g.WaterHeight {
		g.WaterHeight[i] = depth
	}
}
