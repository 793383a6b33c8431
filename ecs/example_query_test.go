package ecs_test

import (
	"fmt"

	"github.com/plus3/vermeer/ecs"
)

// ExampleQuery demonstrates using queries for high-performance iteration.
// Unlike Views, Queries cache the list of matching archetypes and snapshot the
// matching entities on Execute, which provides a significant performance boost
// for repeated iteration. When a Query is a field on a registered system, the
// Scene calls Execute automatically before each of the system's hooks;
// standalone users call it by hand before iterating.
func ExampleQuery() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	storage.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 0, DY: 1}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 20, Y: 20}, Velocity{DX: -1, DY: -1})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)
	query.Execute()

	fmt.Println("Moving entities:")
	for item := range query.Values() {
		newX := item.Position.X + item.Velocity.DX
		newY := item.Position.Y + item.Velocity.DY
		fmt.Printf("Position (%.0f, %.0f) -> (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, newX, newY)
	}

	// Output:
	// Moving entities:
	// Position (0, 0) -> (1, 0)
	// Position (20, 20) -> (19, 19)
	// Position (10, 10) -> (10, 11)
}
