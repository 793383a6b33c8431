package scene

import "github.com/plus3/vermeer/gfx"

// Resources bundles the GPU-session state passed by reference into every
// lifecycle hook. The Scene never interprets it beyond handing it through;
// hooks declare what they need.
type Resources struct {
	// GL is the graphics context the scene renders against.
	GL gfx.Context
}
