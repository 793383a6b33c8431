package ecs

import "sort"

// StorageStats is a point-in-time snapshot of storage occupancy.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	SingletonTypes     []string
	ArchetypeBreakdown []ArchetypeStats
}

// ArchetypeStats describes one archetype's shape and occupancy.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks all archetypes and singletons and returns a snapshot.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount:     len(s.ordered),
		SingletonCount:     len(s.singletons),
		SingletonTypes:     make([]string, 0, len(s.singletons)),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.ordered)),
	}

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	sort.Strings(stats.SingletonTypes)

	for _, archetype := range s.ordered {
		names := make([]string, 0, len(archetype.types))
		for _, typ := range archetype.types {
			names = append(names, typ.String())
		}

		count := archetype.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	return stats
}
