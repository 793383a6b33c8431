package ecs

import (
	"fmt"
	"reflect"
	"sort"
	"unsafe"
)

// Storage is the owning container of all entities and components in one
// world. Entities live in archetypes (one per component-type combination);
// a metadata table maps stable entity handles to their current archetype and
// row, so handles survive archetype migration on Attach/Detach.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	// ordered holds archetypes in creation order. Views and queries walk
	// this slice instead of the map, which makes iteration order
	// deterministic and stable within a pass.
	ordered    []*Archetype
	meta       []entityMeta
	free       []uint32
	liveCount  int
	singletons map[reflect.Type]*singletonEntry
}

type entityMeta struct {
	archetype  *Archetype
	row        int
	generation uint32
	alive      bool
}

// NewStorage creates a new ECS storage with the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Spawn creates a new entity with exactly the provided components and returns
// a fresh handle. Panics if no components are given or a component type is
// not registered.
func (s *Storage) Spawn(components ...any) Entity {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)

	index, generation := s.allocIndex()
	entity := NewEntity(index, generation)

	row := archetype.insert(entity, components)
	s.meta[index] = entityMeta{
		archetype:  archetype,
		row:        row,
		generation: generation,
		alive:      true,
	}
	s.liveCount++
	return entity
}

// Despawn destroys an entity and all its components. The handle becomes
// invalid; its index is recycled under a bumped generation. Despawning an
// already-dead or unknown entity is a no-op.
func (s *Storage) Despawn(entity Entity) {
	meta, ok := s.resolve(entity)
	if !ok {
		return
	}

	meta.archetype.remove(meta.row)
	meta.alive = false
	meta.archetype = nil
	s.free = append(s.free, entity.Index())
	s.liveCount--
}

// Alive reports whether the handle names a live entity.
func (s *Storage) Alive(entity Entity) bool {
	_, ok := s.resolve(entity)
	return ok
}

// Attach adds a component to an existing entity, or replaces it in place if
// the entity already has a component of that type. Panics if the entity is
// dead or unknown: attaching to a nonexistent entity is a programmer error.
func (s *Storage) Attach(entity Entity, component any) {
	compType := componentTypeOf(component)

	meta, ok := s.resolve(entity)
	if !ok {
		panic(fmt.Sprintf("ecs: attach %s to dead or unknown entity %#x", compType, uint64(entity)))
	}

	old := meta.archetype
	if old.HasComponent(compType) {
		if !old.setComponent(meta.row, compType, component) {
			panic(fmt.Sprintf("ecs: attach %s to entity %#x: column rejected value", compType, uint64(entity)))
		}
		return
	}

	newTypes := make([]reflect.Type, 0, len(old.types)+1)
	newTypes = append(newTypes, old.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := append(old.componentsAt(meta.row), component)
	s.migrate(meta, entity, newTypes, components)
}

// Detach removes a component of the given type from an entity. Detaching a
// type the entity does not have is a no-op. If the last component is
// removed, the entity is despawned. Panics on a dead or unknown entity.
func (s *Storage) Detach(entity Entity, compType reflect.Type) {
	meta, ok := s.resolve(entity)
	if !ok {
		panic(fmt.Sprintf("ecs: detach %s from dead or unknown entity %#x", compType, uint64(entity)))
	}

	old := meta.archetype
	if !old.HasComponent(compType) {
		return
	}

	newTypes := make([]reflect.Type, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		s.Despawn(entity)
		return
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, old.GetComponent(meta.row, typ))
	}
	s.migrate(meta, entity, newTypes, components)
}

// migrate moves an entity into the archetype for newTypes, carrying the
// given components, and rewrites its metadata. The handle is unchanged.
func (s *Storage) migrate(meta *entityMeta, entity Entity, newTypes []reflect.Type, components []any) {
	// Pointer components alias the old columns, and removal zeroes those
	// slots. Copy the values out first.
	for i, comp := range components {
		if v := reflect.ValueOf(comp); v.Kind() == reflect.Ptr {
			components[i] = v.Elem().Interface()
		}
	}

	next := s.archetypeFor(newTypes)
	meta.archetype.remove(meta.row)
	meta.archetype = next
	meta.row = next.insert(entity, components)
}

// GetComponent returns a pointer to the entity's component of the given
// type, or nil if the entity is dead or lacks the component.
func (s *Storage) GetComponent(entity Entity, compType reflect.Type) any {
	meta, ok := s.resolve(entity)
	if !ok {
		return nil
	}
	return meta.archetype.GetComponent(meta.row, compType)
}

// HasComponent checks if a live entity has a component of the given type.
func (s *Storage) HasComponent(entity Entity, compType reflect.Type) bool {
	meta, ok := s.resolve(entity)
	if !ok {
		return false
	}
	return meta.archetype.HasComponent(compType)
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.liveCount
}

func (s *Storage) resolve(entity Entity) (*entityMeta, bool) {
	index := entity.Index()
	if int(index) >= len(s.meta) {
		return nil, false
	}
	meta := &s.meta[index]
	if !meta.alive || meta.generation != entity.Generation() {
		return nil, false
	}
	return meta, true
}

func (s *Storage) allocIndex() (uint32, uint32) {
	if n := len(s.free); n > 0 {
		index := s.free[n-1]
		s.free = s.free[:n-1]
		s.meta[index].generation++
		return index, s.meta[index].generation
	}

	index := uint32(len(s.meta))
	s.meta = append(s.meta, entityMeta{generation: 1})
	return index, 1
}

// archetypeFor returns the archetype for a sorted type set, creating and
// recording it on first use.
func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, exists := s.archetypes[id]
	if !exists {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
		s.ordered = append(s.ordered, archetype)
	}
	return archetype
}

// GetArchetype returns the archetype storing exactly the given component
// combination, or nil if no entity with that combination was ever spawned.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes returns an archetype (if one exists) for the given types.
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sort.Sort(byTypeName(types))
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypes returns all archetypes in creation order.
func (s *Storage) GetArchetypes() []*Archetype {
	return s.ordered
}

// ArchetypeOf returns the archetype a live entity currently lives in, or nil
// for a dead or unknown handle.
func (s *Storage) ArchetypeOf(entity Entity) *Archetype {
	meta, ok := s.resolve(entity)
	if !ok {
		return nil
	}
	return meta.archetype
}

func componentTypeOf(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentTypeOf(comp)

		// Components can be structs or primitives (int, string, etc.)
		// but not pointers, maps, channels, or functions.
		if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
			compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// Use the type's pointer as a unique identifier.
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))

		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(Entity, reflect.Type) any
}

// ReadComponent fetches a typed component pointer for an entity. Returns nil
// if the entity lacks the component.
func ReadComponent[T any](reader ComponentReader, entity Entity) *T {
	comp := reader.GetComponent(entity, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
