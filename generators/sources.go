package generators

import (
	"fmt"

	"github.com/ob6160/Erosion/utils"
	"github.com/ojrac/opensimplex-go"
)

// Flat is a constant-height source, handy for tests and for painting
// terrain from scratch.
type Flat struct {
	Width, Length int
	Height        float32
}

func (f Flat) Dimensions() (int, int) {
	return f.Width, f.Length
}

func (f Flat) Sample(x, y int) float32 {
	return f.Height
}

func (f Flat) Reseed() {}

// Heightfield serves a caller-supplied row-major buffer.
type Heightfield struct {
	width, length int
	heights       []float32
}

func NewHeightfield(width, length int, heights []float32) (*Heightfield, error) {
	if width <= 0 || length <= 0 || len(heights) != width*length {
		return nil, fmt.Errorf("generators: %d heights do not fill a %dx%d field", len(heights), width, length)
	}
	return &Heightfield{width: width, length: length, heights: heights}, nil
}

func (h *Heightfield) Dimensions() (int, int) {
	return h.width, h.length
}

func (h *Heightfield) Sample(x, y int) float32 {
	if !utils.WithinBounds(x, y, h.width, h.length) {
		return 0
	}
	return h.heights[utils.ToIndex(x, y, h.width)]
}

func (h *Heightfield) Reseed() {}

// SimplexHardness is a smooth rock-hardness field in [0, 1] sampled from
// opensimplex noise. Frequency is in noise units per cell.
type SimplexHardness struct {
	noise     opensimplex.Noise
	Frequency float64
	// Scale is multiplied into the raw field before clamping.
	Scale float32
}

func NewSimplexHardness(seed int64, frequency float64) *SimplexHardness {
	return &SimplexHardness{
		noise:     opensimplex.New(seed),
		Frequency: frequency,
		Scale:     1,
	}
}

func (s *SimplexHardness) Hardness(x, y int) float32 {
	var v = s.noise.Eval2(float64(x)*s.Frequency, float64(y)*s.Frequency)
	return utils.Clamp(float32((v+1)/2)*s.Scale, 0, 1)
}
