package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{
			nextIndex: 0,
		}
	}
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage is a generic implementation of iComponentStorage.
// It stores components of a specific type `T` in fixed-size blocks with a
// free list, so rows stay stable until the slot is explicitly deleted.
type genericComponentStorage[T any] struct {
	blocks    [][genericBlockSize]T
	filled    [][genericBlockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *genericComponentStorage[T]) unwrap(item any) (T, bool) {
	if ptr, ok := item.(*T); ok {
		return *ptr, true
	}
	if val, ok := item.(T); ok {
		return val, true
	}
	var zero T
	return zero, false
}

// Append adds a component to storage and returns its row.
func (cs *genericComponentStorage[T]) Append(item any) int {
	concreteItem, ok := cs.unwrap(item)
	if !ok {
		return -1
	}

	if len(cs.freeSlots) > 0 {
		row := cs.freeSlots[len(cs.freeSlots)-1]
		cs.freeSlots = cs.freeSlots[:len(cs.freeSlots)-1]

		blockIdx := row / genericBlockSize
		slotIdx := row % genericBlockSize

		cs.blocks[blockIdx][slotIdx] = concreteItem
		cs.filled[blockIdx][slotIdx] = true
		cs.count++
		return row
	}

	row := cs.nextIndex
	cs.nextIndex++

	blockIdx := row / genericBlockSize
	slotIdx := row % genericBlockSize

	if blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, [genericBlockSize]T{})
		cs.filled = append(cs.filled, [genericBlockSize]bool{})
	}

	cs.blocks[blockIdx][slotIdx] = concreteItem
	cs.filled[blockIdx][slotIdx] = true
	cs.count++
	return row
}

// Set overwrites the component at an occupied row. Returns false if the row
// is out of range, empty, or the item has the wrong type.
func (cs *genericComponentStorage[T]) Set(row int, item any) bool {
	concreteItem, ok := cs.unwrap(item)
	if !ok {
		return false
	}
	if !cs.Has(row) {
		return false
	}

	blockIdx := row / genericBlockSize
	slotIdx := row % genericBlockSize
	cs.blocks[blockIdx][slotIdx] = concreteItem
	return true
}

// Get returns a pointer to the component at the given row.
func (cs *genericComponentStorage[T]) Get(row int) any {
	if row < 0 {
		return nil
	}

	blockIdx := row / genericBlockSize
	slotIdx := row % genericBlockSize

	if blockIdx >= len(cs.blocks) {
		return nil
	}

	if !cs.filled[blockIdx][slotIdx] {
		return nil
	}

	return &cs.blocks[blockIdx][slotIdx]
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(row int) {
	if row < 0 {
		return
	}

	blockIdx := row / genericBlockSize
	slotIdx := row % genericBlockSize

	if blockIdx >= len(cs.blocks) {
		return
	}

	if cs.filled[blockIdx][slotIdx] {
		cs.filled[blockIdx][slotIdx] = false
		var zero T
		cs.blocks[blockIdx][slotIdx] = zero
		cs.freeSlots = append(cs.freeSlots, row)
		cs.count--
	}
}

// Has checks if a component exists at the given row.
func (cs *genericComponentStorage[T]) Has(row int) bool {
	if row < 0 {
		return false
	}

	blockIdx := row / genericBlockSize
	slotIdx := row % genericBlockSize

	if blockIdx >= len(cs.blocks) {
		return false
	}

	return cs.filled[blockIdx][slotIdx]
}

// Len returns the number of occupied rows.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Iter yields occupied rows in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			blockIdx := i / genericBlockSize
			slotIdx := i % genericBlockSize

			if blockIdx >= len(cs.filled) {
				continue
			}

			if cs.filled[blockIdx][slotIdx] {
				if !yield(i) {
					return
				}
			}
		}
	}
}
