package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct. Pointer
// fields are unwrapped so Type always names the element type.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// fieldCache memoizes per-type field listings so the inspector does not
// re-derive reflection metadata every frame.
type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

var globalReflectionCache = &fieldCache{
	fields: make(map[reflect.Type][]FieldInfo),
}

// GetFields returns the exported fields of t, computing and caching them on
// first use. Non-struct types yield an empty listing.
func (c *fieldCache) GetFields(t reflect.Type) []FieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	c.fields[t] = fields
	return fields
}
