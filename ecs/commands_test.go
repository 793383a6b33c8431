package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/vermeer/ecs"
)

func TestCommands(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)

	t.Run("spawn is deferred until flush", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		commands := ecs.NewCommands()

		commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
		commands.Spawn(Position{X: 3, Y: 4})

		if storage.Len() != 0 {
			t.Error("entities spawned before flush")
		}

		commands.Flush(storage)

		view := ecs.NewView[struct{ *Position }](storage)
		if view.Count() != 2 {
			t.Errorf("expected 2 entities after flush, got %d", view.Count())
		}
	})

	t.Run("despawn is deferred until flush", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		e1 := storage.Spawn(Position{X: 1, Y: 2})
		e2 := storage.Spawn(Position{X: 3, Y: 4})

		commands := ecs.NewCommands()
		commands.Despawn(e1)

		if !storage.Alive(e1) {
			t.Error("entity despawned before flush")
		}

		commands.Flush(storage)

		if storage.Alive(e1) {
			t.Error("entity not despawned after flush")
		}
		if !storage.Alive(e2) {
			t.Error("wrong entity despawned")
		}
	})

	t.Run("attach and detach are deferred", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		entity := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 1, DY: 1})

		commands := ecs.NewCommands()
		commands.Attach(entity, Health{Current: 50, Max: 100})
		commands.Detach(entity, reflect.TypeOf(Velocity{}))
		commands.Flush(storage)

		if !storage.HasComponent(entity, reflect.TypeOf(Health{})) {
			t.Error("health not attached after flush")
		}
		if storage.HasComponent(entity, reflect.TypeOf(Velocity{})) {
			t.Error("velocity not detached after flush")
		}
	})

	t.Run("despawn drops later ops on same entity", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		entity := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 1, DY: 1})

		// Despawns apply first at flush time; the queued attach and detach
		// against the dead handle must be dropped, not panic.
		commands := ecs.NewCommands()
		commands.Attach(entity, Health{Current: 100, Max: 100})
		commands.Despawn(entity)
		commands.Detach(entity, reflect.TypeOf(Velocity{}))
		commands.Flush(storage)

		if storage.Alive(entity) {
			t.Error("entity still alive after flush")
		}
	})

	t.Run("defer runs at flush time", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		commands := ecs.NewCommands()

		ran := false
		commands.Defer(func() {
			ran = true
		})

		if ran {
			t.Error("deferred function ran before flush")
		}

		commands.Flush(storage)

		if !ran {
			t.Error("deferred function did not run at flush")
		}
	})

	t.Run("flush resets the buffer", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		commands := ecs.NewCommands()

		commands.Spawn(Position{X: 1, Y: 1})
		commands.Flush(storage)
		commands.Flush(storage)

		if storage.Len() != 1 {
			t.Errorf("expected 1 entity after double flush, got %d", storage.Len())
		}
	})

	t.Run("mixed operations", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		doomed := storage.Spawn(Position{X: 1, Y: 1})

		commands := ecs.NewCommands()
		commands.Spawn(Position{X: 10, Y: 20})
		commands.Attach(doomed, Velocity{DX: 1, DY: 1})
		commands.Despawn(doomed)
		commands.Spawn(Health{Current: 100, Max: 100})
		commands.Flush(storage)

		if storage.Alive(doomed) {
			t.Error("doomed entity still alive")
		}
		if storage.Len() != 2 {
			t.Errorf("expected 2 entities, got %d", storage.Len())
		}
	})
}
