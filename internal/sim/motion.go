package sim

import (
	"time"

	"github.com/emberline/server/internal/component"
	"github.com/emberline/server/internal/core/entity"
	coresys "github.com/emberline/server/internal/core/system"
)

// MotionSystem integrates per-tick velocities and bounces entities off the
// world bounds. Phase 1 (Update).
type MotionSystem struct {
	entities   *entity.System
	transforms *component.Store[component.Transform]

	width  int32
	height int32
}

func NewMotionSystem(entities *entity.System, transforms *component.Store[component.Transform], width, height int32) *MotionSystem {
	return &MotionSystem{
		entities:   entities,
		transforms: transforms,
		width:      width,
		height:     height,
	}
}

func (s *MotionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MotionSystem) Update(_ time.Duration) {
	s.transforms.Each(func(h entity.Handle, tr *component.Transform) {
		if !s.entities.Alive(h) {
			return
		}
		tr.X += tr.DX
		tr.Y += tr.DY
		tr.X, tr.DX = bounce(tr.X, tr.DX, s.width)
		tr.Y, tr.DY = bounce(tr.Y, tr.DY, s.height)
	})
}

// bounce reflects a coordinate back into [0, limit) and flips its velocity
// when it crossed either edge.
func bounce(pos, vel, limit int32) (int32, int32) {
	if pos < 0 {
		return -pos, -vel
	}
	if pos >= limit {
		return 2*(limit-1) - pos, -vel
	}
	return pos, vel
}
