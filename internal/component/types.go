package component

// Transform holds an entity's position and per-tick velocity on the world
// grid.
type Transform struct {
	X, Y   int32
	DX, DY int32 // tiles per tick
}

// Lifetime is the number of ticks an entity has left before the
// LifetimeSystem schedules its destruction. Entities without a Lifetime
// component live until destroyed explicitly.
type Lifetime struct {
	TicksLeft int
}

// Label ties an entity to the archetype it was spawned from. It is attached
// between Create and the commit, so the finalize vote can consult it before
// the entity becomes live.
type Label struct {
	Archetype string
}
