package ecs

import "reflect"

// Commands provides a buffer for deferred structural operations that are
// executed at the end of a frame. Systems mutate component values directly
// but must route spawns, despawns, attaches and detaches through Commands so
// no structural change happens while a query pass is iterating.
type Commands struct {
	spawns   []spawnCommand
	despawns []Entity
	attaches []attachCommand
	detaches []detachCommand
	defers   []deferCommand
}

// NewCommands creates an empty command buffer. The Scene creates one per
// frame; standalone storage users can flush one manually.
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type attachCommand struct {
	entity    Entity
	component any
}

type detachCommand struct {
	entity   Entity
	compType reflect.Type
}

// Defer queues an arbitrary function to run at flush time.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Despawn queues an entity destruction operation.
func (c *Commands) Despawn(entity Entity) {
	c.despawns = append(c.despawns, entity)
}

// Attach queues an add-or-replace component operation.
func (c *Commands) Attach(entity Entity, component any) {
	c.attaches = append(c.attaches, attachCommand{
		entity:    entity,
		component: component,
	})
}

// Detach queues a component removal operation.
func (c *Commands) Detach(entity Entity, compType reflect.Type) {
	c.detaches = append(c.detaches, detachCommand{
		entity:   entity,
		compType: compType,
	})
}

// Flush applies all queued commands to the provided storage and resets the
// buffer. Despawns apply first so later attach/detach commands against a
// despawned entity are dropped instead of hitting a dead handle.
func (c *Commands) Flush(storage *Storage) {
	despawned := make(map[Entity]bool)

	for _, entity := range c.despawns {
		storage.Despawn(entity)
		despawned[entity] = true
	}

	for _, cmd := range c.detaches {
		if !despawned[cmd.entity] {
			storage.Detach(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.attaches {
		if !despawned[cmd.entity] {
			storage.Attach(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.attaches = c.attaches[:0]
	c.detaches = c.detaches[:0]
	c.defers = c.defers[:0]
}
