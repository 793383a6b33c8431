package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/vermeer/ecs"
)

// Test basic storage operations
func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(&Position{X: 1.0, Y: 2.0}, &Velocity{DX: 0.5, DY: 0.5}, Score(32))
	assert.False(t, entity.IsZero())
	assert.True(t, storage.Alive(entity))
	assert.Equal(t, 1, storage.Len())
}

func TestSpawnWithoutComponentsPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		storage.Spawn()
	})
}

func TestGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(&Position{X: 3.0, Y: 4.0}, Name{Value: "Test Entity"})

	// Get Position component
	posComp := storage.GetComponent(entity, reflect.TypeOf(Position{}))
	assert.NotNil(t, posComp)
	pos := posComp.(*Position)
	assert.Equal(t, float32(3.0), pos.X)
	assert.Equal(t, float32(4.0), pos.Y)

	// Get Name component
	nameComp := storage.GetComponent(entity, reflect.TypeOf(Name{}))
	assert.NotNil(t, nameComp)
	name := nameComp.(*Name)
	assert.Equal(t, "Test Entity", name.Value)

	// Try to get non-existent component
	velocityComp := storage.GetComponent(entity, reflect.TypeOf(Velocity{}))
	assert.Nil(t, velocityComp)
}

func TestComponentPointersAreLive(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Position{X: 1, Y: 1})

	pos := ecs.ReadComponent[Position](storage, entity)
	pos.X = 42

	again := ecs.ReadComponent[Position](storage, entity)
	assert.Equal(t, float32(42), again.X)
}

func TestDespawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Health{Current: 100, Max: 100})

	assert.True(t, storage.Alive(entity))
	assert.NotNil(t, storage.GetComponent(entity, reflect.TypeOf(Position{})))

	storage.Despawn(entity)

	assert.False(t, storage.Alive(entity))
	assert.Nil(t, storage.GetComponent(entity, reflect.TypeOf(Position{})))
	assert.Equal(t, 0, storage.Len())

	// Despawning again is a no-op.
	storage.Despawn(entity)
	assert.Equal(t, 0, storage.Len())
}

func TestStaleHandleAfterIndexReuse(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1, Y: 1})
	storage.Despawn(first)

	// The index is recycled under a new generation.
	second := storage.Spawn(Position{X: 2, Y: 2})
	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first.Generation(), second.Generation())

	// The stale handle must not resolve to the new occupant.
	assert.False(t, storage.Alive(first))
	assert.Nil(t, storage.GetComponent(first, reflect.TypeOf(Position{})))

	pos := ecs.ReadComponent[Position](storage, second)
	assert.Equal(t, float32(2), pos.X)
}

func TestMultipleEntitiesSameArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	e1 := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Velocity{DX: 0.1, DY: 0.1})
	e2 := storage.Spawn(&Position{X: 2.0, Y: 2.0}, &Velocity{DX: 0.2, DY: 0.2})
	e3 := storage.Spawn(&Position{X: 3.0, Y: 3.0}, &Velocity{DX: 0.3, DY: 0.3})

	assert.Equal(t, storage.ArchetypeOf(e1), storage.ArchetypeOf(e2))
	assert.Equal(t, storage.ArchetypeOf(e1), storage.ArchetypeOf(e3))

	assert.NotEqual(t, e1, e2)
	assert.NotEqual(t, e1, e3)
	assert.NotEqual(t, e2, e3)

	pos1 := ecs.ReadComponent[Position](storage, e1)
	pos2 := ecs.ReadComponent[Position](storage, e2)
	pos3 := ecs.ReadComponent[Position](storage, e3)

	assert.Equal(t, float32(1.0), pos1.X)
	assert.Equal(t, float32(2.0), pos2.X)
	assert.Equal(t, float32(3.0), pos3.X)
}

func TestAttachMigratesArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Position{X: 1, Y: 2})
	before := storage.ArchetypeOf(entity)

	storage.Attach(entity, Velocity{DX: 5, DY: 10})

	// The handle is unchanged but the entity moved to a new archetype.
	after := storage.ArchetypeOf(entity)
	assert.NotEqual(t, before, after)
	assert.True(t, storage.HasComponent(entity, reflect.TypeOf(Velocity{})))

	pos := ecs.ReadComponent[Position](storage, entity)
	vel := ecs.ReadComponent[Velocity](storage, entity)
	assert.Equal(t, float32(1), pos.X)
	assert.Equal(t, float32(5), vel.DX)
}

func TestAttachOverwritesExisting(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 1, DY: 1})
	before := storage.ArchetypeOf(entity)

	// Attaching a type the entity already has replaces the value in place,
	// so an entity never carries two components of one type.
	storage.Attach(entity, Velocity{DX: 9, DY: 9})

	assert.Equal(t, before, storage.ArchetypeOf(entity))
	vel := ecs.ReadComponent[Velocity](storage, entity)
	assert.Equal(t, float32(9), vel.DX)
	assert.Equal(t, float32(9), vel.DY)
}

func TestAttachToDeadEntityPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Position{X: 1, Y: 1})
	storage.Despawn(entity)

	assert.Panics(t, func() {
		storage.Attach(entity, Velocity{DX: 1, DY: 1})
	})
}

func TestDetach(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 1, DY: 1})

	storage.Detach(entity, reflect.TypeOf(Velocity{}))

	assert.True(t, storage.Alive(entity))
	assert.False(t, storage.HasComponent(entity, reflect.TypeOf(Velocity{})))

	pos := ecs.ReadComponent[Position](storage, entity)
	assert.Equal(t, float32(1), pos.X)
}

func TestDetachMissingComponentIsNoOp(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Position{X: 1, Y: 2})
	before := storage.ArchetypeOf(entity)

	storage.Detach(entity, reflect.TypeOf(Velocity{}))

	assert.Equal(t, before, storage.ArchetypeOf(entity))
	assert.True(t, storage.Alive(entity))
}

func TestDetachLastComponentDespawns(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Position{X: 1, Y: 2})
	storage.Detach(entity, reflect.TypeOf(Position{}))

	assert.False(t, storage.Alive(entity))
	assert.Equal(t, 0, storage.Len())
}

func TestHandleSurvivesOtherEntityRemoval(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	e1 := storage.Spawn(Position{X: 1, Y: 1})
	e2 := storage.Spawn(Position{X: 2, Y: 2})
	e3 := storage.Spawn(Position{X: 3, Y: 3})

	// Removing a neighbor must not invalidate other handles in the same
	// archetype.
	storage.Despawn(e2)

	pos1 := ecs.ReadComponent[Position](storage, e1)
	pos3 := ecs.ReadComponent[Position](storage, e3)
	assert.Equal(t, float32(1), pos1.X)
	assert.Equal(t, float32(3), pos3.X)
}

func TestSpawnUnregisteredComponentPanics(t *testing.T) {
	type Unregistered struct{ V int }

	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		storage.Spawn(Unregistered{V: 1})
	})
}

func TestSpawnInvalidComponentKindPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		storage.Spawn(map[string]int{"hp": 1})
	})
}

func TestGetArchetypesCreationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{})
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Health{})
	storage.Spawn(Position{}) // existing archetype, no new entry

	archetypes := storage.GetArchetypes()
	assert.Len(t, archetypes, 3)
	assert.Equal(t, 2, archetypes[0].Len())
	assert.Equal(t, 1, archetypes[1].Len())
	assert.Equal(t, 1, archetypes[2].Len())
}

func TestGetArchetypeByComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Velocity{DX: 1})

	archetype := storage.GetArchetype(Position{}, Velocity{})
	assert.NotNil(t, archetype)
	assert.Equal(t, 1, archetype.Len())

	// Component order must not matter.
	sameArchetype := storage.GetArchetype(Velocity{}, Position{})
	assert.Equal(t, archetype, sameArchetype)

	assert.Nil(t, storage.GetArchetype(Health{}))
}

func TestReadComponentNilSafety(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Position{X: 1, Y: 1})

	assert.NotNil(t, ecs.ReadComponent[Position](storage, entity))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, entity))

	storage.Despawn(entity)
	assert.Nil(t, ecs.ReadComponent[Position](storage, entity))
}
