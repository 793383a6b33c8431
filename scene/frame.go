package scene

import "github.com/plus3/vermeer/ecs"

// Frame carries one tick's timing and the world lent to update hooks.
type Frame struct {
	// DeltaTime is the seconds elapsed since the previous tick.
	DeltaTime float64
	// Elapsed is the seconds elapsed since the first tick.
	Elapsed float64
	// Tick counts completed update phases, starting at 0 for the first.
	Tick uint64

	// World is the scene's component store. Component values may be mutated
	// directly; structural changes (spawn, despawn, attach, detach) must be
	// deferred through Commands.
	World *ecs.Storage
	// Commands collects deferred structural operations, flushed by the
	// Scene after the last system's update.
	Commands *ecs.Commands
}
