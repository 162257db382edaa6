package sim

import (
	"math/rand"
	"time"

	"github.com/emberline/server/internal/component"
	"github.com/emberline/server/internal/core/entity"
	coresys "github.com/emberline/server/internal/core/system"
	"github.com/emberline/server/internal/data"
	"github.com/emberline/server/internal/scripting"
	"go.uber.org/zap"
)

// Stores bundles the component stores the simulation writes to.
type Stores struct {
	Labels     *component.Store[component.Label]
	Transforms *component.Store[component.Transform]
	Lifetimes  *component.Store[component.Lifetime]
}

// SpawnSystem keeps each archetype at its configured target population.
// Phase 0 (Spawn). Spawned entities get all component data attached before
// the commit, so the finalize vote can inspect the archetype label — and the
// Lua policy can still reject the creation, in which case the slot is
// recycled without the entity ever becoming live.
type SpawnSystem struct {
	entities   *entity.System
	archetypes *data.ArchetypeTable
	stores     Stores
	lua        *scripting.Engine
	rng        *rand.Rand
	log        *zap.Logger

	width  int32
	height int32

	counts map[string]int // scratch: valid entities per archetype this tick
}

func NewSpawnSystem(
	entities *entity.System,
	archetypes *data.ArchetypeTable,
	stores Stores,
	lua *scripting.Engine,
	rng *rand.Rand,
	width, height int32,
	log *zap.Logger,
) *SpawnSystem {
	s := &SpawnSystem{
		entities:   entities,
		archetypes: archetypes,
		stores:     stores,
		lua:        lua,
		rng:        rng,
		log:        log,
		width:      width,
		height:     height,
		counts:     make(map[string]int, archetypes.Count()),
	}
	s.entities.Events.Finalize.Subscribe(s.finalizeVote)
	return s
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(_ time.Duration) {
	// Count live and pending entities per archetype, so entities spawned
	// earlier this tick are not double-spawned before the commit.
	clear(s.counts)
	s.stores.Labels.Each(func(h entity.Handle, lbl *component.Label) {
		if s.entities.Alive(h) {
			s.counts[lbl.Archetype]++
		}
	})

	for _, at := range s.archetypes.All() {
		for n := s.counts[at.Name]; n < at.Count; n++ {
			s.spawn(&at)
		}
	}
}

func (s *SpawnSystem) spawn(at *data.Archetype) {
	h := s.entities.Create()
	if h.IsNil() {
		return
	}
	s.stores.Labels.Set(h, &component.Label{Archetype: at.Name})
	s.stores.Transforms.Set(h, &component.Transform{
		X:  s.rng.Int31n(s.width),
		Y:  s.rng.Int31n(s.height),
		DX: s.step(at.Speed),
		DY: s.step(at.Speed),
	})
	if at.LifetimeTicks > 0 {
		s.stores.Lifetimes.Set(h, &component.Lifetime{TicksLeft: at.LifetimeTicks})
	}
}

// step returns a velocity component in [-speed, speed].
func (s *SpawnSystem) step(speed int32) int32 {
	if speed <= 0 {
		return 0
	}
	return s.rng.Int31n(2*speed+1) - speed
}

// finalizeVote consults the Lua spawn policy for pending creations that
// carry an archetype label. Unlabeled entities are not ours to judge.
func (s *SpawnSystem) finalizeVote(ev entity.Finalizing) bool {
	lbl, ok := s.stores.Labels.Get(ev.Handle)
	if !ok {
		return true
	}
	if s.lua == nil {
		return true
	}
	target := 0
	if at := s.archetypes.Get(lbl.Archetype); at != nil {
		target = at.Count
	}
	approved := s.lua.CanFinalize(scripting.FinalizeContext{
		Archetype: lbl.Archetype,
		Live:      s.entities.Count(),
		Target:    target,
	})
	if !approved {
		s.log.Debug("spawn rejected by policy",
			zap.String("archetype", lbl.Archetype),
			zap.Int32("id", ev.Handle.Identifier()))
	}
	return approved
}
