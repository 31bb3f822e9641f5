package enemy

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/event"
	"github.com/Versifine/baguette/internal/world"
)

type Config = config.EnemyConfig

// Target is what an enemy chases and hurts.
type Target interface {
	Position() mgl64.Vec3
	TakeDamage(amount float64)
	Alive() bool
}

// Enemy walks straight at its target across the ground plane and deals
// contact damage on a cooldown.
type Enemy struct {
	Name string

	cfg         Config
	position    mgl64.Vec3
	health      int
	damageTimer float64
	bus         *event.Bus
}

func New(name string, cfg Config, pos mgl64.Vec3, bus *event.Bus) *Enemy {
	return &Enemy{Name: name, cfg: cfg, position: pos, health: cfg.Health, bus: bus}
}

func (e *Enemy) Update(target Target, dt float64) {
	if !e.Alive() || target == nil || !target.Alive() || dt <= 0 {
		return
	}
	goal := target.Position()
	goal[1] = e.position.Y()
	if goal.Sub(e.position).Len() < e.cfg.ChaseRange {
		e.position = world.MoveTowards(e.position, goal, e.cfg.MoveSpeed*dt)
	}

	if target.Position().Sub(e.position).Len() > e.cfg.ContactRadius {
		return
	}
	e.damageTimer -= dt
	if e.damageTimer <= 0 {
		target.TakeDamage(e.cfg.Damage)
		e.damageTimer = e.cfg.DamageCooldown
	}
}

// Hit applies weapon damage and reports whether it defeated the enemy.
func (e *Enemy) Hit(damage int) bool {
	if !e.Alive() {
		return false
	}
	e.health -= damage
	slog.Info("Enemy hit", "enemy", e.Name, "damage", damage, "remaining", e.health)
	if e.health > 0 {
		return false
	}
	slog.Info("Enemy defeated", "enemy", e.Name)
	e.bus.Publish(event.EventEnemyDefeated, event.EnemyEvent{Name: e.Name, Position: e.position})
	return true
}

func (e *Enemy) Alive() bool {
	return e.health > 0
}

func (e *Enemy) Health() int {
	return e.health
}

func (e *Enemy) Position() mgl64.Vec3 {
	return e.position
}
