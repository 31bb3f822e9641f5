package health

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/audio"
	"github.com/Versifine/baguette/internal/event"
)

// Health tracks hit points for the player. It dies once; damage after death
// is ignored.
type Health struct {
	max     float64
	current float64
	dead    bool

	cues audio.Dispatcher
	bus  *event.Bus

	// OnDeath runs once when hit points reach zero.
	OnDeath func()
	// Locate reports where the owner is for the death event.
	Locate func() mgl64.Vec3
}

func New(maxHP float64, cues audio.Dispatcher, bus *event.Bus) *Health {
	if cues == nil {
		cues = audio.Nop{}
	}
	return &Health{max: maxHP, current: maxHP, cues: cues, bus: bus}
}

func (h *Health) TakeDamage(amount float64) {
	if h.dead || amount <= 0 || math.IsNaN(amount) {
		return
	}
	h.current = mgl64.Clamp(h.current-amount, 0, h.max)
	if h.current <= 0 {
		h.die()
	}
	h.cues.Play(audio.SteveDamage)
	h.bus.Publish(event.EventDamaged, event.DamageEvent{Amount: amount, NewHP: h.current})
}

func (h *Health) Heal(amount float64) {
	if h.dead || amount <= 0 || math.IsNaN(amount) {
		return
	}
	h.current = mgl64.Clamp(h.current+amount, 0, h.max)
}

func (h *Health) die() {
	h.dead = true
	var pos mgl64.Vec3
	if h.Locate != nil {
		pos = h.Locate()
	}
	slog.Info("Player died", "position", pos)
	h.cues.Play(audio.Scorpion)
	if h.OnDeath != nil {
		h.OnDeath()
	}
	h.bus.Publish(event.EventDied, event.DeathEvent{Position: pos})
}

func (h *Health) Current() float64 {
	return h.current
}

func (h *Health) Max() float64 {
	return h.max
}

func (h *Health) Alive() bool {
	return !h.dead
}

// Fraction is current over max, for the HUD bar.
func (h *Health) Fraction() float64 {
	if h.max <= 0 {
		return 0
	}
	return h.current / h.max
}
