// Package character assembles the player: locomotion, the orbit camera that
// frames it, its hit points and the animation feed, stepped in frame order.
package character

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/animation"
	"github.com/Versifine/baguette/internal/audio"
	"github.com/Versifine/baguette/internal/camera"
	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/event"
	"github.com/Versifine/baguette/internal/health"
	"github.com/Versifine/baguette/internal/input"
	"github.com/Versifine/baguette/internal/locomotion"
	"github.com/Versifine/baguette/internal/world"
)

type Character struct {
	motion *locomotion.Model
	rig    *camera.Rig
	health *health.Health
	anim   *animation.Damped
	jump   input.Latch
	bus    *event.Bus

	frame uint64
}

// New spawns the player at spawn facing +Z with the camera already behind it.
func New(cfg *config.Config, probe world.Prober, spawn mgl64.Vec3, cues audio.Dispatcher, bus *event.Bus) *Character {
	c := &Character{
		anim: animation.NewDamped(cfg.Animation.DampTime),
		bus:  bus,
	}
	c.motion = locomotion.New(cfg.Locomotion, nil, probe, spawn, 0)
	c.rig = camera.New(cfg.Camera, c.motion)
	c.motion.SetView(c.rig)

	c.health = health.New(cfg.Health.Max, cues, bus)
	c.health.Locate = c.motion.Position
	c.health.OnDeath = c.Disable
	return c
}

// Update runs locomotion, the animation feed and the camera for one frame.
// The camera always runs so a dead player can still be looked at.
func (c *Character) Update(in input.Sample, dt float64) locomotion.Report {
	if dt <= 0 {
		return locomotion.Report{Skipped: true}
	}
	c.frame++
	in = in.Clamped()

	c.jump.Update(in.Jump)
	rep := c.motion.Update(in, &c.jump, dt)
	if rep.Jumped {
		c.publishMotion(event.EventJumped)
	}
	if rep.Landed {
		c.publishMotion(event.EventLanded)
	}

	if !rep.Skipped {
		animation.Apply(c.anim, animation.Map(c.motion.State(), c.motion.Config()))
	}
	c.anim.Tick(dt)

	c.rig.Update(in.Look, dt)
	return rep
}

func (c *Character) publishMotion(name string) {
	st := c.motion.State()
	c.bus.Publish(name, event.MotionEvent{Frame: c.frame, Position: st.Position, Velocity: st.Velocity})
}

// Disable stops locomotion for good and settles the animation at rest.
func (c *Character) Disable() {
	if !c.motion.Enabled() {
		return
	}
	slog.Info("Player controls disabled", "position", c.motion.Position())
	c.motion.Disable()
	c.jump.Reset()
	c.anim.SetSpeed(0)
	c.anim.SetJumping(false)
}

func (c *Character) Enabled() bool {
	return c.motion.Enabled()
}

// Teleport moves the player, drops any momentum or pending jump, and cuts
// the camera to its new place.
func (c *Character) Teleport(pos mgl64.Vec3) {
	c.motion.Teleport(pos)
	c.jump.Reset()
	c.rig.Snap()
}

// SetTuning swaps locomotion and camera tuning between frames.
func (c *Character) SetTuning(loco locomotion.Config, cam camera.Config, dampTime float64) {
	c.motion.SetConfig(loco)
	c.rig.SetConfig(cam)
	c.anim.DampTime = dampTime
}

func (c *Character) TakeDamage(amount float64) {
	c.health.TakeDamage(amount)
}

func (c *Character) Alive() bool {
	return c.health.Alive()
}

func (c *Character) Position() mgl64.Vec3 {
	return c.motion.Position()
}

func (c *Character) Grounded() bool {
	return c.motion.Grounded()
}

func (c *Character) FacingYaw() float64 {
	return c.motion.FacingYaw()
}

func (c *Character) State() locomotion.State {
	return c.motion.State()
}

func (c *Character) Health() *health.Health {
	return c.health
}

func (c *Character) Camera() *camera.Rig {
	return c.rig
}

func (c *Character) Animator() *animation.Damped {
	return c.anim
}
