// Command scene-stress drives full scene ticks (update + render) against the
// headless backend and reports timing, draw-call and memory statistics. It
// needs no GPU and is the harness used to size scheduling overhead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"

	"github.com/plus3/vermeer/ecs"
	"github.com/plus3/vermeer/gfx"
	"github.com/plus3/vermeer/gfx/backend"
	_ "github.com/plus3/vermeer/gfx/backend/headless"
	"github.com/plus3/vermeer/scene"
)

// Spin is the angular velocity component the stress systems animate.
type Spin struct {
	RadiansPerSec float32
}

// SpinSystem rotates every transform carrying a Spin.
type SpinSystem struct {
	scene.NopSystem
	Entities ecs.Query[struct {
		*scene.TransformComponent
		*Spin
	}]
}

func (s *SpinSystem) Update(frame *scene.Frame, res *scene.Resources) {
	for item := range s.Entities.Values() {
		rot := mgl32.QuatRotate(item.Spin.RadiansPerSec*float32(frame.DeltaTime), mgl32.Vec3{0, 0, 1})
		item.TransformComponent.Rotation = rot.Mul(item.TransformComponent.Rotation)
	}
}

// WireframeToggleSystem flips the shared render config once a second, so the
// run also exercises per-draw state retoggling.
type WireframeToggleSystem struct {
	scene.NopSystem
	Config      *gfx.Config
	accumulated float64
}

func (w *WireframeToggleSystem) Update(frame *scene.Frame, res *scene.Resources) {
	w.accumulated += frame.DeltaTime
	if w.accumulated >= 1.0 {
		w.accumulated = 0
		w.Config.Wireframe = !w.Config.Wireframe
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of sprite entities to spawn.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a profile: cpu or mem.")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		log.Fatalf("unknown -profile mode %q", *profileMode)
	}

	log.Println("Starting scene stress test...")

	b := backend.Get(backend.BackendHeadless)
	if b == nil {
		log.Fatal("headless backend not registered")
	}
	if err := b.Init(); err != nil {
		log.Fatalf("backend init: %v", err)
	}
	defer b.Close()

	res := &scene.Resources{GL: b.NewContext()}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Spin](registry)
	sc := scene.NewScene(registry)

	sharedConfig := gfx.NewConfigBuilder().DepthTest(true).Blend(true).Build()

	sc.Register(&SpinSystem{})
	sc.Register(&WireframeToggleSystem{Config: sharedConfig})

	log.Printf("Spawning %d sprite entities...\n", *entityCount)
	for i := 0; i < *entityCount; i++ {
		sprite := scene.NewSprite(rand.Float32()+0.5, rand.Float32()+0.5)
		sprite.Config = sharedConfig
		entity := sc.NewEntity(
			scene.NewTransformAt(mgl32.Vec3{rand.Float32() * 100, rand.Float32() * 100, 0}),
			sprite,
		)
		sc.Attach(entity, Spin{RadiansPerSec: rand.Float32() * 2})
	}
	log.Println("Spawn complete.")

	sc.Setup(res)

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Systems:        2,
		GCPauseMetrics: *gcPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalTicks int64
	var totalDrawCalls int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			tickStart := time.Now()
			sc.Update(float64(deltaTime)/float64(time.Second), res)
			rp := gfx.NewRenderPass(res.GL)
			sc.Render(rp, res)
			tickDuration := time.Since(tickStart)

			report.TickTime.Samples = append(report.TickTime.Samples, tickDuration)
			totalDrawCalls += int64(rp.DrawCalls())
			totalTicks++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalTicks = totalTicks
	report.TotalDrawCalls = totalDrawCalls
	report.SceneStats = sc.Stats()
	report.StorageStats = sc.World().CollectStats()
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	sc.Destroy()
	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Scene Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
