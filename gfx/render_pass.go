package gfx

// RenderPass carries the per-frame draw state handed to render hooks. It
// wraps the context the frame is rendered against and counts the draw calls
// issued through it, which the stress harness and tests use as
// instrumentation.
type RenderPass struct {
	gl        Context
	drawCalls int
}

// NewRenderPass starts a pass against the given context.
func NewRenderPass(gl Context) *RenderPass {
	return &RenderPass{gl: gl}
}

// Context returns the context this pass renders against.
func (rp *RenderPass) Context() Context {
	return rp.gl
}

// Draw draws the vao's vertices as triangles with the given uniforms and
// records the call against this pass.
func (rp *RenderPass) Draw(vao *Vao, uniforms UniformSet) {
	vao.DrawTriangles(uniforms)
	rp.drawCalls++
}

// DrawMode is Draw with an explicit primitive mode.
func (rp *RenderPass) DrawMode(vao *Vao, uniforms UniformSet, mode PrimitiveMode) {
	vao.Draw(uniforms, mode)
	rp.drawCalls++
}

// DrawCalls returns the number of draws issued through this pass so far.
func (rp *RenderPass) DrawCalls() int {
	return rp.drawCalls
}
