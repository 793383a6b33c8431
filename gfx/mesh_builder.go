package gfx

import "fmt"

// MeshBuilder accumulates interleaved vertex data on the CPU and builds a
// Vao from it in one upload. Vertices are appended against a fixed attribute
// layout declared up front.
type MeshBuilder struct {
	layout      []Attribute
	stride      int32
	data        []float32
	vertexCount int32
}

// NewMeshBuilder creates a builder for the given attribute layout.
func NewMeshBuilder(layout []Attribute) *MeshBuilder {
	if len(layout) == 0 {
		panic("gfx: NewMeshBuilder requires at least one vertex attribute")
	}
	return &MeshBuilder{
		layout: layout,
		stride: StrideComponents(layout),
	}
}

// PushVertex appends one vertex. The number of components must match the
// layout stride exactly.
func (b *MeshBuilder) PushVertex(components ...float32) *MeshBuilder {
	if int32(len(components)) != b.stride {
		panic(fmt.Sprintf("gfx: vertex has %d components, layout requires %d",
			len(components), b.stride))
	}
	b.data = append(b.data, components...)
	b.vertexCount++
	return b
}

// PushAll appends pre-interleaved vertex data. The length must be a whole
// number of vertices under the layout.
func (b *MeshBuilder) PushAll(data []float32) *MeshBuilder {
	if int32(len(data))%b.stride != 0 {
		panic(fmt.Sprintf("gfx: data length %d is not a multiple of stride %d",
			len(data), b.stride))
	}
	b.data = append(b.data, data...)
	b.vertexCount += int32(len(data)) / b.stride
	return b
}

// VertexCount returns the number of vertices accumulated so far.
func (b *MeshBuilder) VertexCount() int32 {
	return b.vertexCount
}

// Build uploads the accumulated data and returns the finished Vao. The
// builder can keep accumulating afterward; Build snapshots the current data.
func (b *MeshBuilder) Build(gl Context, usage Usage, config *Config) *Vao {
	return NewVao(gl, b.data, b.layout, usage, b.vertexCount, config)
}

// QuadPosUV returns two triangles covering a w×h quad centered on the
// origin in the XY plane, with texture coordinates spanning [0,1], laid out
// as LayoutPosUV.
func QuadPosUV(w, h float32) []float32 {
	hw, hh := w/2, h/2
	return []float32{
		-hw, -hh, 0, 0, 1,
		hw, -hh, 0, 1, 1,
		hw, hh, 0, 1, 0,

		-hw, -hh, 0, 0, 1,
		hw, hh, 0, 1, 0,
		-hw, hh, 0, 0, 0,
	}
}
