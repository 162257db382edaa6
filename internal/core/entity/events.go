package entity

import "github.com/emberline/server/internal/core/event"

// Finalizing is published for a pending creation at the commit. Any
// subscriber returning false vetoes the creation and the slot is recycled
// without the entity ever becoming live.
type Finalizing struct {
	Handle Handle
}

// Created is published after a pending creation is finalized and the entity
// becomes live.
type Created struct {
	Handle Handle
}

// Destroyed is published just before an entity's slot is freed. Observers
// may still read the entity's component data at this point.
type Destroyed struct {
	Handle Handle
}

// Events groups the lifecycle notification channels of a System.
type Events struct {
	Finalize event.VoteDispatcher[Finalizing]
	Create   event.Dispatcher[Created]
	Destroy  event.Dispatcher[Destroyed]
}
