package scene

import "github.com/plus3/vermeer/gfx"

// System is a unit of per-frame logic with three lifecycle hooks, invoked by
// the Scene in registration order within each phase. Systems may declare
// ecs.Query and ecs.Singleton struct fields; the Scene initializes them at
// registration and refreshes query snapshots before each hook runs.
type System interface {
	// Setup runs exactly once, before the first tick.
	Setup(res *Resources)

	// Update runs every tick. The frame lends out the world for exclusive
	// mutation; structural changes must go through frame.Commands.
	Update(frame *Frame, res *Resources)

	// Render runs every tick after all updates, against the frame's render
	// pass.
	Render(rp *gfx.RenderPass, res *Resources)
}

// NopSystem is an embeddable no-op implementation of System. Embed it to
// implement only the hooks a system cares about.
type NopSystem struct{}

func (NopSystem) Setup(*Resources)                   {}
func (NopSystem) Update(*Frame, *Resources)          {}
func (NopSystem) Render(*gfx.RenderPass, *Resources) {}
