package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseSpawn      Phase = iota // 0: replenish archetype populations
	PhaseUpdate                  // 1: simulation logic
	PhasePostUpdate              // 2: lifetimes, bookkeeping
	PhaseCommit                  // 3: apply queued entity commands
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
