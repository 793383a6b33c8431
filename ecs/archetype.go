package ecs

import (
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores all entities sharing one exact combination of component
// types. Each component type gets its own column; columns assign rows in
// lock-step so one row addresses one entity across every column.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []iComponentStorage
	// rows maps an occupied row to the entity living there. Row assignment
	// is column-driven, so the reverse mapping lives here.
	rows *intmap.Map[uint32, Entity]
}

// NewArchetype creates a new archetype with the given ID and sorted component types.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]iComponentStorage, len(types)),
		rows:    intmap.New[uint32, Entity](256),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("ecs: component type " + typ.String() + " not registered")
		}
		a.columns[idx] = factory()
	}

	return a
}

// insert places an entity's components into this archetype and returns the
// assigned row. Components may be given in any order; each is routed to its
// column by type.
func (a *Archetype) insert(entity Entity, components []any) int {
	row := -1
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		for idx, typ := range a.types {
			if typ == compType {
				r := a.columns[idx].Append(comp)
				if row == -1 {
					row = r
				} else if row != r {
					panic("ecs: archetype columns out of sync")
				}
			}
		}
	}

	if row >= 0 {
		a.rows.Put(uint32(row), entity)
	}
	return row
}

// remove clears all columns at the given row and forgets the resident entity.
func (a *Archetype) remove(row int) {
	for _, col := range a.columns {
		col.Delete(row)
	}
	a.rows.Del(uint32(row))
}

// setComponent overwrites the component of the given type at an occupied row.
func (a *Archetype) setComponent(row int, compType reflect.Type, component any) bool {
	for idx, typ := range a.types {
		if typ == compType {
			return a.columns[idx].Set(row, component)
		}
	}
	return false
}

// GetComponent returns the component of the given type for the entity at row.
func (a *Archetype) GetComponent(row int, compType reflect.Type) any {
	for idx, typ := range a.types {
		if typ == compType {
			return a.columns[idx].Get(row)
		}
	}
	return nil
}

// componentsAt collects every component stored at row, in column order.
// Used when an entity migrates between archetypes.
func (a *Archetype) componentsAt(row int) []any {
	components := make([]any, 0, len(a.columns))
	for _, col := range a.columns {
		components = append(components, col.Get(row))
	}
	return components
}

// EntityAt returns the entity occupying the given row.
func (a *Archetype) EntityAt(row int) (Entity, bool) {
	return a.rows.Get(uint32(row))
}

// HasComponent checks if this archetype has the given component type.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in this archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Iter returns an iterator over all live entities in this archetype, in
// ascending row order. The order is stable as long as no structural change
// happens between passes.
func (a *Archetype) Iter() func(yield func(Entity) bool) {
	return func(yield func(Entity) bool) {
		if len(a.columns) == 0 {
			return
		}

		for row := range a.columns[0].Iter() {
			entity, ok := a.rows.Get(uint32(row))
			if !ok {
				continue
			}
			if !yield(entity) {
				return
			}
		}
	}
}
