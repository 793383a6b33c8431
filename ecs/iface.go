package ecs

import "unsafe"

// iface mirrors the runtime layout of a non-empty interface value, giving
// access to the data word without an allocation.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
