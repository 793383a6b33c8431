// Package scene orchestrates the engine's per-frame protocol: an ECS world
// of components, an ordered list of systems, and the setup → (update →
// render)* dispatch that ties component behavior to GPU draws.
package scene

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/plus3/vermeer/ecs"
	"github.com/plus3/vermeer/gfx"
)

// Scene owns the component store and an ordered list of registered systems.
// All phases run strictly serially: no system is ever invoked concurrently
// with another, and registration order is the invocation order within each
// phase.
type Scene struct {
	world   *ecs.Storage
	systems []System
	// queries holds, per system, the query snapshots to refresh before that
	// system's hooks run.
	queries [][]phaseQuery
	stats   []*systemStatsInternal

	spriteView *ecs.View[spritePair]
	// spriteOnlyView matches every sprite regardless of other components, so
	// setup and teardown cover sprites that have no transform yet.
	spriteOnlyView *ecs.View[spriteOnly]

	setupDone bool
	elapsed   float64
	tick      uint64
}

type spritePair struct {
	*TransformComponent
	*SpriteComponent
}

type spriteOnly struct {
	*SpriteComponent
}

// phaseQuery is the slice of a Query the Scene drives: snapshot refresh.
type phaseQuery interface {
	Execute()
}

// NewScene creates an empty scene. The engine's built-in component types
// (Transform, Sprite) are registered on the given registry; the caller
// registers its own component types before or after.
func NewScene(registry *ecs.ComponentRegistry) *Scene {
	ecs.RegisterComponent[TransformComponent](registry)
	ecs.RegisterComponent[SpriteComponent](registry)

	world := ecs.NewStorage(registry)
	return &Scene{
		world:          world,
		spriteView:     ecs.NewView[spritePair](world),
		spriteOnlyView: ecs.NewView[spriteOnly](world),
	}
}

// World returns the scene's component store.
func (s *Scene) World() *ecs.Storage {
	return s.world
}

// NewEntity spawns an entity carrying a transform and a sprite, the pairing
// every drawable entity starts from.
func (s *Scene) NewEntity(transform TransformComponent, sprite SpriteComponent) ecs.Entity {
	return s.world.Spawn(transform, sprite)
}

// Attach adds a component to an existing entity, replacing any previous
// component of the same type. Panics if the entity does not exist.
func (s *Scene) Attach(entity ecs.Entity, component any) {
	s.world.Attach(entity, component)
}

// Register appends a system to the dispatch order and initializes its
// ecs.Query and ecs.Singleton struct fields against the scene's world.
func (s *Scene) Register(system System) {
	s.queries = append(s.queries, s.initializeQueries(system))
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.stats = append(s.stats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scene) initializeQueries(system System) []phaseQuery {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []phaseQuery
	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()

		if strings.HasPrefix(typeName, "Query[") || strings.HasPrefix(typeName, "Singleton[") {
			initMethod := field.Addr().MethodByName("Init")
			if !initMethod.IsValid() {
				panic("scene: Init method not found on field: " + fieldType.Name)
			}
			initMethod.Call([]reflect.Value{
				reflect.ValueOf(s.world),
			})
		}

		if strings.HasPrefix(typeName, "Query[") {
			if q, ok := field.Addr().Interface().(phaseQuery); ok {
				queries = append(queries, q)
			}
		}
	}

	return queries
}

// Setup runs the one-time initialization phase: every sprite uploads its GPU
// resources, then every system's Setup hook runs in registration order.
// Must be called exactly once before the first Update; a second call panics.
func (s *Scene) Setup(res *Resources) {
	if s.setupDone {
		panic("scene: Setup called twice")
	}
	s.setupDone = true

	for _, sprite := range s.spriteOnlyView.Iter() {
		sprite.SpriteComponent.Setup(res)
	}

	for i, system := range s.systems {
		s.executeQueries(i)
		system.Setup(res)
	}
}

// Update runs every system's Update hook in registration order. Each system
// observes all mutations of the systems before it; the world is lent out
// serially, never aliased. Deferred structural commands are flushed after
// the last system returns.
func (s *Scene) Update(dt float64, res *Resources) {
	s.elapsed += dt
	frame := &Frame{
		DeltaTime: dt,
		Elapsed:   s.elapsed,
		Tick:      s.tick,
		World:     s.world,
		Commands:  ecs.NewCommands(),
	}
	s.tick++

	for i, system := range s.systems {
		s.executeQueries(i)

		start := time.Now()
		system.Update(frame, res)
		duration := time.Since(start)

		stats := s.stats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.world)
}

// Render first draws every (Transform, Sprite) entity through its sprite's
// own render, in the store's stable iteration order, then runs every
// system's Render hook in registration order.
func (s *Scene) Render(rp *gfx.RenderPass, res *Resources) {
	for _, pair := range s.spriteView.Iter() {
		pair.SpriteComponent.Render(rp, res, pair.TransformComponent)
	}

	for i, system := range s.systems {
		s.executeQueries(i)
		system.Render(rp, res)
	}
}

func (s *Scene) executeQueries(systemIndex int) {
	for _, q := range s.queries[systemIndex] {
		q.Execute()
	}
}

// Run drives the scene at a fixed interval until the context is cancelled:
// one Update followed by one Render per tick, each tick against a fresh
// render pass. Setup must have been called.
func (s *Scene) Run(ctx context.Context, interval time.Duration, res *Resources) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now

			s.Update(dt, res)
			s.Render(gfx.NewRenderPass(res.GL), res)
		}
	}
}

// Destroy releases the GPU resources owned by the scene's components. The
// scene must not be rendered afterward. Safe to call more than once.
func (s *Scene) Destroy() {
	for _, sprite := range s.spriteOnlyView.Iter() {
		sprite.SpriteComponent.Destroy()
	}
}

// String summarizes the scene for debug logs.
func (s *Scene) String() string {
	return fmt.Sprintf("Scene(%d entities, %d systems)", s.world.Len(), len(s.systems))
}
