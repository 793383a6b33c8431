// Package gl adapts the gfx.Context boundary to OpenGL 4.1 core via
// github.com/go-gl/gl. The host must create a window/context itself (GLFW,
// SDL, ...) and make it current on the calling goroutine before Init.
package gl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/plus3/vermeer/gfx"
	"github.com/plus3/vermeer/gfx/backend"
)

func init() {
	backend.Register(backend.BackendGL, func() backend.Backend {
		return &Backend{}
	})
}

// Backend is the OpenGL backend.
type Backend struct {
	initialized bool
}

func (b *Backend) Name() string { return backend.BackendGL }

// Init loads the OpenGL function pointers from the current context.
func (b *Backend) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl: init: %w", err)
	}
	b.initialized = true
	return nil
}

func (b *Backend) Close() {
	b.initialized = false
}

// NewContext returns the OpenGL context adapter. Panics if Init has not
// succeeded: issuing GL calls without loaded function pointers crashes in
// native code with no diagnostics.
func (b *Backend) NewContext() gfx.Context {
	if !b.initialized {
		panic("gl: NewContext before Init")
	}
	return &context{}
}

var usageValues = map[gfx.Usage]uint32{
	gfx.StaticDraw:  gl.STATIC_DRAW,
	gfx.DynamicDraw: gl.DYNAMIC_DRAW,
}

var primitiveValues = map[gfx.PrimitiveMode]uint32{
	gfx.Points:        gl.POINTS,
	gfx.Lines:         gl.LINES,
	gfx.LineStrip:     gl.LINE_STRIP,
	gfx.Triangles:     gl.TRIANGLES,
	gfx.TriangleStrip: gl.TRIANGLE_STRIP,
	gfx.TriangleFan:   gl.TRIANGLE_FAN,
}

var capabilityValues = map[gfx.Capability]uint32{
	gfx.CapDepthTest: gl.DEPTH_TEST,
	gfx.CapBlend:     gl.BLEND,
	gfx.CapCullFace:  gl.CULL_FACE,
}

var blendFactorValues = map[gfx.BlendFactor]uint32{
	gfx.BlendZero:             gl.ZERO,
	gfx.BlendOne:              gl.ONE,
	gfx.BlendSrcAlpha:         gl.SRC_ALPHA,
	gfx.BlendOneMinusSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
}

var attribTypeValues = map[gfx.AttribType]uint32{
	gfx.Float: gl.FLOAT,
}

type context struct{}

func (c *context) CreateVertexArray() uint32 {
	var array uint32
	gl.GenVertexArrays(1, &array)
	return array
}

func (c *context) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (c *context) BindVertexArray(array uint32) {
	gl.BindVertexArray(array)
}

func (c *context) BindArrayBuffer(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (c *context) BufferData(data []float32, usage gfx.Usage) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*gfx.FloatSize, gl.Ptr(data), usageValues[usage])
}

func (c *context) EnableVertexAttrib(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (c *context) VertexAttribPointer(index uint32, size int32, typ gfx.AttribType, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, attribTypeValues[typ], false, stride, uintptr(offset))
}

func (c *context) SetCapability(cap gfx.Capability, enabled bool) {
	if enabled {
		gl.Enable(capabilityValues[cap])
	} else {
		gl.Disable(capabilityValues[cap])
	}
}

func (c *context) BlendFunc(src, dst gfx.BlendFactor) {
	gl.BlendFunc(blendFactorValues[src], blendFactorValues[dst])
}

func (c *context) PolygonMode(mode gfx.PolygonMode) {
	if mode == gfx.PolygonLine {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (c *context) DrawArrays(mode gfx.PrimitiveMode, first, count int32) {
	gl.DrawArrays(primitiveValues[mode], first, count)
}

func (c *context) BindTexture2D(texture uint32) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (c *context) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (c *context) DeleteVertexArray(array uint32) {
	gl.DeleteVertexArrays(1, &array)
}
