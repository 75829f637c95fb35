package erosion

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/Erosion/utils"
)

// HeightSource supplies the terrain the grid is filled from on reset.
type HeightSource interface {
	Dimensions() (int, int)
	Sample(x, y int) float32
	Reseed()
}

// HardnessSource supplies per-cell terrain hardness in [0, 1], where 1
// does not erode at all.
type HardnessSource interface {
	Hardness(x, y int) float32
}

type Option func(*CPUEroder)

func WithNormals(normals NormalProvider) Option {
	return func(t *CPUEroder) {
		t.normals = normals
	}
}

func WithHardness(hardness HardnessSource) Option {
	return func(t *CPUEroder) {
		t.hardness = hardness
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(t *CPUEroder) {
		t.logger = logger
	}
}

// WithWorkers splits each per-cell stage across n goroutines.
func WithWorkers(n int) Option {
	return func(t *CPUEroder) {
		t.workers = n
	}
}

// WithSeed seeds the rain generator. Reset rewinds it to this seed.
func WithSeed(seed uint64) Option {
	return func(t *CPUEroder) {
		t.seed = seed
	}
}

// CPUEroder advances the erosion model one frame at a time and owns the
// run/pause state.
type CPUEroder struct {
	grid  *Grid
	swap  *LayerData
	state *State

	source         HeightSource
	hardness       HardnessSource
	normals        NormalProvider
	defaultNormals *HeightNormals

	rng   *rand.Rand
	seed  uint64
	brush Brush

	running    bool
	iterations int
	workers    int
	logger     *log.Logger
}

func NewCPUEroder(source HeightSource, state *State, opts ...Option) (*CPUEroder, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	width, length := source.Dimensions()
	grid, err := NewGrid(width, length)
	if err != nil {
		return nil, err
	}
	var eroder = CPUEroder{
		grid:    grid,
		swap:    newLayerData(grid.Len()),
		state:   state,
		source:  source,
		running: false,
		workers: 1,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(&eroder)
	}
	if eroder.normals == nil {
		eroder.defaultNormals = &HeightNormals{Grid: grid, CellLength: state.CellLength}
		eroder.normals = eroder.defaultNormals
	}
	// Initialise layerdata
	if err := eroder.Reset(); err != nil {
		return nil, err
	}
	return &eroder, nil
}

func (t *CPUEroder) Grid() *Grid {
	return t.grid
}

func (t *CPUEroder) State() *State {
	return t.state
}

func (t *CPUEroder) Iterations() int {
	return t.iterations
}

func (t *CPUEroder) Toggle() {
	t.running = !t.running
}

func (t *CPUEroder) Pause() {
	t.running = false
}

func (t *CPUEroder) Resume() {
	t.running = true
}

func (t *CPUEroder) IsRunning() bool {
	return t.running
}

// Reset refills every field from the height source without reseeding it.
func (t *CPUEroder) Reset() error {
	width, length := t.source.Dimensions()
	if width != t.grid.width || length != t.grid.length {
		return fmt.Errorf("%w: grid is %dx%d, source is %dx%d",
			ErrDimensionsChanged, t.grid.width, t.grid.length, width, length)
	}
	var g = t.grid
	for y := 0; y < length; y++ {
		for x := 0; x < width; x++ {
			var i = utils.ToIndex(x, y, width)
			g.Heightmap[i] = t.source.Sample(x, y)
			g.WaterHeight[i] = t.state.InitialWaterHeight
			g.SuspendedSediment[i] = 0
			g.OutflowFlux[i] = mgl32.Vec4{}
			g.Velocity[i] = mgl32.Vec2{}
			g.Hardness[i] = 0
			if t.hardness != nil {
				g.Hardness[i] = utils.Clamp(t.hardness.Hardness(x, y), 0, 1)
			}
		}
	}
	t.swap.zero()
	t.rng = rand.New(rand.NewPCG(t.seed, t.seed^0x9e3779b97f4a7c15))
	t.iterations = 0
	t.logger.Printf("erosion: reset %dx%d grid", width, length)
	return nil
}

// Regenerate reseeds the height source and resets from the new terrain.
func (t *CPUEroder) Regenerate() error {
	t.source.Reseed()
	t.logger.Println("erosion: height source reseeded")
	return t.Reset()
}

// Update runs one step if the simulation is running.
func (t *CPUEroder) Update(dt float32) error {
	if !t.running {
		return nil
	}
	return t.Step(dt)
}

// Step advances the model by dt regardless of the run state.
func (t *CPUEroder) Step(dt float32) error {
	if dt < 0 || math32.IsNaN(dt) || math32.IsInf(dt, 0) {
		return fmt.Errorf("%w: time step %v", ErrInvalidConfig, dt)
	}
	if err := t.state.Validate(); err != nil {
		t.logger.Println("erosion: refusing to step:", err)
		return err
	}
	if t.defaultNormals != nil {
		t.defaultNormals.CellLength = t.state.CellLength
	}

	// Water increment
	t.rain(dt)
	t.paint(dt)

	// Shallow water flow
	t.updateOutflowFlux(dt)
	t.updateWaterHeight(dt)

	// Erosion, deposition and transport
	t.updateSediment(dt)
	t.advectSediment(dt)

	if t.state.UseThermalErosion {
		t.thermalErosion(dt)
	}

	t.evaporate(dt)
	t.iterations++
	return nil
}

func (t *CPUEroder) clampMass(v float32) float32 {
	if t.state.ClampNegative && v < 0 {
		return 0
	}
	return v
}
