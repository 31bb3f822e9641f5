package animation

import (
	"math"

	"github.com/Versifine/baguette/internal/locomotion"
)

// restSpeed is the planar speed under which the blend parameter reads zero.
const restSpeed = 0.01

// Signal drives the character's blend tree. NormalizedSpeed is 0 at rest,
// 1 at walk speed and 2 at sprint speed.
type Signal struct {
	NormalizedSpeed float64
	Jumping         bool
}

// Player receives the per-frame animation parameters.
type Player interface {
	SetSpeed(v float64)
	SetJumping(v bool)
}

// Map derives the animation signal from locomotion state. It keeps nothing
// between calls.
func Map(st locomotion.State, cfg locomotion.Config) Signal {
	return Signal{
		NormalizedSpeed: normalizedSpeed(st, cfg),
		Jumping:         !st.Grounded,
	}
}

// Apply pushes sig to p; a nil player is ignored.
func Apply(p Player, sig Signal) {
	if p == nil {
		return
	}
	p.SetSpeed(sig.NormalizedSpeed)
	p.SetJumping(sig.Jumping)
}

func normalizedSpeed(st locomotion.State, cfg locomotion.Config) float64 {
	planar := st.PlanarSpeed()
	if planar < restSpeed || math.IsNaN(planar) {
		return 0
	}
	if st.Sprinting && !st.Idle {
		span := cfg.SprintSpeed - cfg.WalkSpeed
		if span <= 1e-9 {
			if planar >= cfg.SprintSpeed {
				return 2
			}
			return 1
		}
		return 1 + clamp01((planar-cfg.WalkSpeed)/span)
	}
	if cfg.WalkSpeed <= 0 {
		return 1
	}
	return clamp01(planar / cfg.WalkSpeed)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
