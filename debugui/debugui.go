// Package debugui provides immediate-mode GUI inspection for vermeer scenes
// using Dear ImGui: an entity browser, a component inspector, and
// storage/frame statistics. It renders through ImguiItem components and the
// ImguiSystem so widget code runs inside the host's ImGui frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/vermeer/ecs"
	"github.com/plus3/vermeer/scene"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton
// component. Use this to determine if ImGui is consuming mouse or keyboard
// input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render
// functions to the end of the update phase, inside the host's ImGui frame.
// It also updates the ImguiInputState singleton with current capture state.
type ImguiSystem struct {
	scene.NopSystem
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Update refreshes input state and queues all ImGui render functions.
func (i *ImguiSystem) Update(frame *scene.Frame, res *scene.Resources) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.ImguiItem.Render)
	}
}

// DebugSystem drives the stock inspection windows. The entity browser runs
// before the component inspector so the inspector sees this frame's
// selection.
type DebugSystem struct {
	scene.NopSystem
	Browsers   ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors ecs.Query[struct{ *ComponentInspectorComponent }]
	Perf       ecs.Query[struct{ *PerformanceStatsComponent }]
}

func (d *DebugSystem) Update(frame *scene.Frame, res *scene.Resources) {
	storage := frame.World
	dt := float32(frame.DeltaTime)

	var browser *EntityBrowserComponent
	for item := range d.Browsers.Values() {
		browser = item.EntityBrowserComponent
		frame.Commands.Defer(func() {
			browser.Render(storage)
		})
	}

	for item := range d.Inspectors.Values() {
		inspector := item.ComponentInspectorComponent
		frame.Commands.Defer(func() {
			var selected ecs.Entity
			if browser != nil {
				selected = browser.GetSelectedEntity()
			}
			inspector.Render(storage, selected)
		})
	}

	for item := range d.Perf.Values() {
		perf := item.PerformanceStatsComponent
		frame.Commands.Defer(func() {
			perf.Render(storage, dt)
		})
	}
}
