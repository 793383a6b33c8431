package ecs

import "iter"

// iComponentStorage is an interface for a type-erased component column.
// Every column of one archetype assigns rows in lock-step, so the same row
// addresses the same entity across all columns.
type iComponentStorage interface {
	Append(item any) int
	Set(row int, item any) bool
	Delete(row int)
	Get(row int) any
	Has(row int) bool
	Len() int
	Iter() iter.Seq[int]
}
