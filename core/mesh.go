package core

import "github.com/go-gl/mathgl/mgl32"

// Interleaved position and normal, three floats each.
const stride = 6

// Mesh is a CPU-side triangle mesh. Vertices are laid out for a renderer
// to upload as-is.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / stride
}

func (m *Mesh) Position(i int) mgl32.Vec3 {
	var v = m.Vertices[i*stride:]
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func (m *Mesh) Normal(i int) mgl32.Vec3 {
	var v = m.Vertices[i*stride+3:]
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func (m *Mesh) setPosition(i int, p mgl32.Vec3) {
	copy(m.Vertices[i*stride:], p[:])
}

func (m *Mesh) setNormal(i int, n mgl32.Vec3) {
	copy(m.Vertices[i*stride+3:], n[:])
}
