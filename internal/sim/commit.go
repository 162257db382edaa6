package sim

import (
	"time"

	"github.com/emberline/server/internal/core/entity"
	coresys "github.com/emberline/server/internal/core/system"
)

// CommitSystem applies queued entity creations and destructions at tick end.
// Phase 3 (Commit).
type CommitSystem struct {
	entities *entity.System
}

func NewCommitSystem(entities *entity.System) *CommitSystem {
	return &CommitSystem{entities: entities}
}

func (s *CommitSystem) Phase() coresys.Phase { return coresys.PhaseCommit }

func (s *CommitSystem) Update(_ time.Duration) {
	s.entities.ProcessCommands()
}
