package ecs

import (
	"reflect"
	"unsafe"
)

type singletonEntry struct {
	dataPtr unsafe.Pointer
	// value pins the allocation so dataPtr stays live.
	value any
}

// AddSingleton stores a world-global component instance that is not attached
// to any entity. A second AddSingleton of the same type replaces the value
// in place, keeping existing Singleton accessors valid.
func (s *Storage) AddSingleton(value any) {
	compType := componentTypeOf(value)

	if entry, ok := s.singletons[compType]; ok {
		reflect.NewAt(compType, entry.dataPtr).Elem().Set(reflect.ValueOf(value))
		return
	}

	boxed := reflect.New(compType)
	boxed.Elem().Set(reflect.ValueOf(value))
	s.singletons[compType] = &singletonEntry{
		dataPtr: boxed.UnsafePointer(),
		value:   boxed.Interface(),
	}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadSingleton points target (a pointer to a component pointer) at the
// stored singleton of that type. Returns false and leaves target untouched
// if no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Ptr {
		panic("ecs: ReadSingleton target must be a pointer to a component pointer")
	}

	compType := val.Elem().Type().Elem()
	entry := s.getSingletonEntry(compType)
	if entry == nil {
		return false
	}

	val.Elem().Set(reflect.NewAt(compType, entry.dataPtr))
	return true
}

// Singleton provides efficient access to a single component instance that is
// not associated with any entity. Use this for global state such as ambient
// render settings or per-world configuration.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If initializer is provided and the singleton doesn't exist in storage,
// it will be created with the initializer value. Otherwise, a zero value is
// used. This guarantees the singleton exists in storage after the call.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	var zero T
	componentType := reflect.TypeOf(zero)

	entry := storage.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
		entry = storage.getSingletonEntry(componentType)
	}

	return &Singleton[T]{
		storage:       storage,
		componentPtr:  entry.dataPtr,
		componentType: componentType,
	}
}

// Init initializes the Singleton with a storage reference.
// This is called automatically by the Scene during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	var zero T
	s.storage = storage
	s.componentType = reflect.TypeOf(zero)
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// updateCache refreshes the cached pointer from storage.
func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	entry := s.storage.getSingletonEntry(s.componentType)
	if entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}

// Exists returns true if the singleton component has been added to storage.
func (s *Singleton[T]) Exists() bool {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return s.componentPtr != nil
}
