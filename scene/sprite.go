package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/vermeer/gfx"
)

// SpriteComponent is a drawable quad backed by a GPU vertex resource. The
// resource is uploaded once in Setup and drawn every Render with the owning
// entity's transform.
type SpriteComponent struct {
	// Width and Height size the quad in world units.
	Width  float32
	Height float32

	// Config holds the render state used for every draw. Left nil, Setup
	// installs the sprite default (depth test + alpha blend). Shared
	// configs may be flipped between draws to retoggle state.
	Config *gfx.Config

	// UniformsFor maps the entity's model matrix to the host's opaque
	// uniform bundle for one draw. The scene never interprets the result.
	UniformsFor func(model mgl32.Mat4) gfx.UniformSet

	vao *gfx.Vao
}

// NewSprite returns a sprite of the given size with default render state.
func NewSprite(width, height float32) SpriteComponent {
	return SpriteComponent{
		Width:  width,
		Height: height,
	}
}

// Setup uploads the sprite's quad geometry. Called by Scene.Setup for every
// sprite in the world; calling it again is a no-op, so sprites spawned after
// setup can be initialized individually.
func (s *SpriteComponent) Setup(res *Resources) {
	if s.vao != nil {
		return
	}

	if s.Config == nil {
		s.Config = gfx.NewConfigBuilder().DepthTest(true).Blend(true).Build()
	}

	s.vao = gfx.NewMeshBuilder(gfx.LayoutPosUV).
		PushAll(gfx.QuadPosUV(s.Width, s.Height)).
		Build(res.GL, gfx.StaticDraw, s.Config)
}

// Render draws the sprite's quad under the given transform. Panics if the
// sprite was never set up: rendering an unuploaded resource is a programmer
// error, not a recoverable state.
func (s *SpriteComponent) Render(rp *gfx.RenderPass, res *Resources, transform *TransformComponent) {
	if s.vao == nil {
		panic("scene: sprite rendered before setup")
	}

	var uniforms gfx.UniformSet
	if s.UniformsFor != nil {
		uniforms = s.UniformsFor(transform.Matrix())
	}
	rp.Draw(s.vao, uniforms)
}

// Ready reports whether the sprite's GPU resources are uploaded.
func (s *SpriteComponent) Ready() bool {
	return s.vao != nil
}

// Destroy releases the sprite's GPU resources. Idempotent.
func (s *SpriteComponent) Destroy() {
	if s.vao != nil {
		s.vao.Destroy()
		s.vao = nil
	}
}
