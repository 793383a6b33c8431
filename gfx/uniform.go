package gfx

// UniformSet is an opaque bundle of shader inputs. The vertex-resource core
// never interprets its contents; it only invokes Apply at the bind step of a
// draw, after the vertex array is bound and before the draw call is issued.
type UniformSet interface {
	Apply()
}

// UniformFunc adapts a plain function to the UniformSet interface.
type UniformFunc func()

// Apply calls f.
func (f UniformFunc) Apply() {
	f()
}
