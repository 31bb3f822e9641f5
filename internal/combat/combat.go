package combat

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/event"
)

type Config = config.CombatConfig

// Target is anything a swing can hurt.
type Target interface {
	Position() mgl64.Vec3
	Alive() bool
	Hit(damage int) bool
}

type Result struct {
	Attacked bool
	Hits     int
	Defeated int
}

// Swing is the player's melee attack: every living target inside Range is
// hit, at most once per Cooldown while the button is held.
type Swing struct {
	cfg        Config
	clock      float64
	nextAttack float64
	bus        *event.Bus
}

func New(cfg Config, bus *event.Bus) *Swing {
	return &Swing{cfg: cfg, bus: bus}
}

func (s *Swing) Update(attack bool, origin mgl64.Vec3, targets []Target, dt float64) Result {
	if dt > 0 {
		s.clock += dt
	}
	if !attack || s.clock < s.nextAttack {
		return Result{}
	}
	s.nextAttack = s.clock + s.cfg.Cooldown

	res := Result{Attacked: true}
	for _, t := range targets {
		if t == nil || !t.Alive() {
			continue
		}
		if t.Position().Sub(origin).Len() > s.cfg.Range {
			continue
		}
		res.Hits++
		if t.Hit(s.cfg.Damage) {
			res.Defeated++
		}
	}

	if res.Hits > 0 {
		slog.Info("Attack hit", "targets", res.Hits, "defeated", res.Defeated)
	} else {
		slog.Debug("Attack missed: no enemies in range")
	}
	s.bus.Publish(event.EventAttackResolved, event.AttackEvent{Hits: res.Hits, Damage: s.cfg.Damage})
	return res
}

// Ready reports whether a held button would attack on the next update.
func (s *Swing) Ready() bool {
	return s.clock >= s.nextAttack
}
