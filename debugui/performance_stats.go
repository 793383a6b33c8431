package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/vermeer/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Render draws the performance window: frame timing with a rolling graph,
// world totals, and expandable archetype and singleton detail.
func (ps *PerformanceStatsComponent) Render(storage *ecs.Storage, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.record(deltaTime * 1000.0)

	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	ps.renderFrameTiming()
	ps.renderArchetypeDetails(stats)
	ps.renderSingletonDetails(stats)

	imgui.End()
}

// record pushes one frame time (ms) into the rolling history.
func (ps *PerformanceStatsComponent) record(frameMs float32) {
	ps.frameHistory[ps.frameIndex] = frameMs
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	if ps.sampleCount < ps.historyFrames {
		ps.sampleCount++
	}
}

func (ps *PerformanceStatsComponent) renderFrameTiming() {
	// Average over recorded samples only, so the warmup frames of a
	// zero-filled history do not drag the number down.
	var sum, worst float32
	for _, ft := range ps.frameHistory[:ps.sampleCount] {
		sum += ft
		if ft > worst {
			worst = ft
		}
	}

	if ps.sampleCount > 0 && sum > 0 {
		avg := sum / float32(ps.sampleCount)
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
		imgui.Text(fmt.Sprintf("Worst Frame: %.2f ms", worst))
	} else {
		imgui.Text("Avg Frame Time: collecting...")
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))
}

func (ps *PerformanceStatsComponent) renderArchetypeDetails(stats *ecs.StorageStats) {
	if !imgui.TreeNodeStr("Archetype Details") {
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		for _, arch := range stats.ArchetypeBreakdown {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", arch.ID))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
		}

		imgui.EndTable()
	}
	imgui.TreePop()
}

func (ps *PerformanceStatsComponent) renderSingletonDetails(stats *ecs.StorageStats) {
	if !imgui.TreeNodeStr("Singleton Details") {
		return
	}
	for _, singletonType := range stats.SingletonTypes {
		imgui.BulletText(singletonType)
	}
	imgui.TreePop()
}

// FrameTimer measures wall-clock delta between frames for hosts that do not
// get one from their game loop.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
