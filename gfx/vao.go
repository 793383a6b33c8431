package gfx

import "fmt"

// Vao owns one native vertex-array handle and one native buffer handle plus
// the shared render-state config and vertex count needed to draw them.
// Vertex content is immutable after construction. The pair of handles is
// either both valid or, after Destroy, both zero.
type Vao struct {
	gl          Context
	vao         uint32
	vbo         uint32
	vertexCount int32
	config      *Config
}

// NewVao allocates a vertex array/buffer pair, uploads data under the usage
// hint, and configures one attribute slot per layout entry with interleaved
// offsets. Binding is symmetric: the global array/buffer bindings are left
// untouched on return.
//
// len(data) must equal vertexCount times the layout stride, the layout must
// be non-empty, and config must be non-nil; violations are programmer errors
// and panic. Native handle allocation failure is fatal too.
func NewVao(gl Context, data []float32, layout []Attribute, usage Usage, vertexCount int32, config *Config) *Vao {
	if len(layout) == 0 {
		panic("gfx: NewVao requires at least one vertex attribute")
	}
	if config == nil {
		panic("gfx: NewVao requires a non-nil config")
	}
	stride := StrideComponents(layout)
	if int32(len(data)) != vertexCount*stride {
		panic(fmt.Sprintf("gfx: vertex data length %d does not match %d vertices with stride %d",
			len(data), vertexCount, stride))
	}

	vao := gl.CreateVertexArray()
	if vao == 0 {
		panic("gfx: vertex array allocation failed")
	}
	vbo := gl.CreateBuffer()
	if vbo == 0 {
		panic("gfx: vertex buffer allocation failed")
	}

	gl.BindVertexArray(vao)
	gl.BindArrayBuffer(vbo)
	gl.BufferData(data, usage)

	strideBytes := stride * FloatSize
	offset := int32(0)
	for i, attr := range layout {
		gl.EnableVertexAttrib(uint32(i))
		gl.VertexAttribPointer(uint32(i), attr.Size, attr.Type, strideBytes, int(offset*FloatSize))
		offset += attr.Size
	}

	gl.BindArrayBuffer(0)
	gl.BindVertexArray(0)

	return &Vao{
		gl:          gl,
		vao:         vao,
		vbo:         vbo,
		vertexCount: vertexCount,
		config:      config,
	}
}

// Draw issues one draw call over all vertices. Every call re-applies the
// four config-driven states (depth test, blend, polygon mode, culling), so
// draws are self-contained and order-independent with respect to other
// resources. The vertex array and the 2D texture unit are unbound afterward.
func (v *Vao) Draw(uniforms UniformSet, mode PrimitiveMode) {
	gl := v.gl

	gl.SetCapability(CapDepthTest, v.config.DepthTest)

	gl.SetCapability(CapBlend, v.config.Blend)
	if v.config.Blend {
		gl.BlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	}

	if v.config.Wireframe {
		gl.PolygonMode(PolygonLine)
	} else {
		gl.PolygonMode(PolygonFill)
	}

	gl.SetCapability(CapCullFace, v.config.Culling)

	gl.BindVertexArray(v.vao)
	if uniforms != nil {
		uniforms.Apply()
	}
	gl.DrawArrays(mode, 0, v.vertexCount)
	gl.BindVertexArray(0)
	gl.BindTexture2D(0)
}

// DrawTriangles draws the vertices as triangles.
func (v *Vao) DrawTriangles(uniforms UniformSet) {
	v.Draw(uniforms, Triangles)
}

// VertexCount returns the number of vertices covered by each draw.
func (v *Vao) VertexCount() int32 {
	return v.vertexCount
}

// Config returns the shared render-state config.
func (v *Vao) Config() *Config {
	return v.config
}

// Destroy releases the native handles: buffer first, then vertex array,
// since array objects reference buffer bindings. Each deletion is guarded by
// a non-zero check and the handles are zeroed, so calling Destroy twice is a
// no-op rather than an error. Safe to call on every exit path.
func (v *Vao) Destroy() {
	if v.vbo != 0 {
		v.gl.DeleteBuffer(v.vbo)
		v.vbo = 0
	}
	if v.vao != 0 {
		v.gl.DeleteVertexArray(v.vao)
		v.vao = 0
	}
}
