package sim

import (
	"time"

	"github.com/emberline/server/internal/component"
	"github.com/emberline/server/internal/core/entity"
	coresys "github.com/emberline/server/internal/core/system"
)

// LifetimeSystem decrements entity lifetimes and schedules expired entities
// for destruction. Phase 2 (PostUpdate) — the actual slot recycling happens
// at the commit.
type LifetimeSystem struct {
	entities  *entity.System
	lifetimes *component.Store[component.Lifetime]
}

func NewLifetimeSystem(entities *entity.System, lifetimes *component.Store[component.Lifetime]) *LifetimeSystem {
	return &LifetimeSystem{entities: entities, lifetimes: lifetimes}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LifetimeSystem) Update(_ time.Duration) {
	s.lifetimes.Each(func(h entity.Handle, lt *component.Lifetime) {
		if !s.entities.Alive(h) {
			return // already marked for destruction
		}
		lt.TicksLeft--
		if lt.TicksLeft <= 0 {
			s.entities.Destroy(h)
		}
	})
}
