package debugui

import "github.com/plus3/vermeer/ecs"

// SpawnDebugUI spawns the stock inspection windows into a world and seeds the
// ImguiInputState singleton the ImguiSystem writes to.
func SpawnDebugUI(storage *ecs.Storage) {
	storage.Spawn(NewEntityBrowserComponent(100))
	storage.Spawn(NewComponentInspectorComponent())
	storage.Spawn(NewPerformanceStatsComponent(120))
	storage.AddSingleton(ImguiInputState{})
}

// RegisterDebugUIComponents registers the package's component types.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
	ecs.RegisterComponent[FrameTimer](registry)
}
