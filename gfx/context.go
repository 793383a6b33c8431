// Package gfx owns the GPU-side vertex resources of the engine: vertex
// array/buffer pairs, their attribute layout, per-draw render state, and the
// narrow Context boundary through which all native graphics calls flow.
package gfx

// Usage is the buffer upload hint.
type Usage int

const (
	// StaticDraw marks vertex data as written once and drawn many times.
	StaticDraw Usage = iota
	// DynamicDraw marks vertex data as rewritten frequently.
	DynamicDraw
)

// PrimitiveMode selects how vertices are assembled into primitives.
type PrimitiveMode int

const (
	Points PrimitiveMode = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

// Capability is a toggleable fixed-function render state.
type Capability int

const (
	CapDepthTest Capability = iota
	CapBlend
	CapCullFace
)

// PolygonMode selects filled or outlined rasterization.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
)

// BlendFactor is a blend equation factor.
type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// AttribType is the element type of one vertex attribute. This core only
// deals in float32 vertex data.
type AttribType int

const (
	Float AttribType = iota
)

// Context is the narrow boundary to the native graphics API. It exposes
// exactly the operations the vertex-resource core needs, so the rest of the
// engine never touches raw native handles and a recording implementation can
// stand in for a real GPU in tests.
//
// The host owns context creation and must keep the native context current on
// the calling goroutine; every method is a thin pass-through with no
// internal synchronization. A zero handle returned from a Create call means
// native allocation failed.
type Context interface {
	CreateVertexArray() uint32
	CreateBuffer() uint32

	// BindVertexArray binds the vertex array, or unbinds with handle 0.
	BindVertexArray(array uint32)
	// BindArrayBuffer binds a buffer to the array-buffer target, or unbinds
	// with handle 0.
	BindArrayBuffer(buffer uint32)
	// BufferData uploads vertex data to the currently bound array buffer.
	BufferData(data []float32, usage Usage)

	EnableVertexAttrib(index uint32)
	// VertexAttribPointer configures one attribute slot against the bound
	// buffer. stride and offset are in bytes.
	VertexAttribPointer(index uint32, size int32, typ AttribType, stride int32, offset int)

	SetCapability(cap Capability, enabled bool)
	BlendFunc(src, dst BlendFactor)
	PolygonMode(mode PolygonMode)

	DrawArrays(mode PrimitiveMode, first, count int32)

	// BindTexture2D binds a 2D texture, or unbinds with handle 0.
	BindTexture2D(texture uint32)

	DeleteBuffer(buffer uint32)
	DeleteVertexArray(array uint32)
}
