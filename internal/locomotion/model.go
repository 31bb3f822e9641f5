package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/input"
	"github.com/Versifine/baguette/internal/logger"
	"github.com/Versifine/baguette/internal/world"
)

// Config aliases the yaml section so tuning has a single definition.
type Config = config.LocomotionConfig

const (
	// idleResidualSpeedSqr is the squared planar speed under which a character
	// with released input counts as standing still.
	idleResidualSpeedSqr = 0.05
	// activeInputSqr selects acceleration over deceleration.
	activeInputSqr = 0.01
	// turnSpeedSqr is the squared planar speed below which facing holds.
	turnSpeedSqr = 1e-6
)

var (
	forwardAxis = mgl64.Vec3{0, 0, 1}
	down        = mgl64.Vec3{0, -1, 0}
)

// View is the camera orientation movement input is resolved against.
type View interface {
	Forward() mgl64.Vec3
	Right() mgl64.Vec3
}

type State struct {
	Position  mgl64.Vec3
	Facing    mgl64.Quat
	Velocity  mgl64.Vec3
	Grounded  bool
	Idle      bool
	Sprinting bool
}

// PlanarSpeed is the magnitude of the ground-plane velocity.
func (s State) PlanarSpeed() float64 {
	return math.Hypot(s.Velocity.X(), s.Velocity.Z())
}

// Report describes the transitions of one Update.
type Report struct {
	Skipped    bool
	Jumped     bool
	Landed     bool
	LeftGround bool
}

// Model is the kinematic character controller. It owns the locomotion state;
// nothing else writes it.
type Model struct {
	cfg   Config
	view  View
	probe world.Prober

	state     State
	idleTimer float64
	disabled  bool
}

func New(cfg Config, view View, probe world.Prober, spawn mgl64.Vec3, facingYaw float64) *Model {
	m := &Model{
		cfg:   cfg,
		view:  view,
		probe: probe,
		state: State{
			Position: spawn,
			Facing:   yawQuat(facingYaw),
		},
	}
	m.state.Grounded = m.probeGround(spawn)
	return m
}

func (m *Model) SetView(v View) {
	m.view = v
}

// SetConfig swaps tuning between frames; state is kept.
func (m *Model) SetConfig(cfg Config) {
	m.cfg = cfg
}

func (m *Model) Config() Config {
	return m.cfg
}

func (m *Model) State() State {
	return m.state
}

func (m *Model) Position() mgl64.Vec3 {
	return m.state.Position
}

func (m *Model) Grounded() bool {
	return m.state.Grounded
}

// FacingYaw is the heading in degrees, clockwise from +Z.
func (m *Model) FacingYaw() float64 {
	f := m.state.Facing.Rotate(forwardAxis)
	return mgl64.RadToDeg(math.Atan2(f.X(), f.Z()))
}

// Disable halts all further updates. Used when the character dies.
func (m *Model) Disable() {
	m.disabled = true
}

func (m *Model) Enabled() bool {
	return !m.disabled
}

// Teleport places the feet at pos and drops all velocity.
func (m *Model) Teleport(pos mgl64.Vec3) {
	m.state.Position = pos
	m.state.Velocity = mgl64.Vec3{}
	m.idleTimer = 0
	m.state.Grounded = m.probeGround(pos)
}

// Update advances one frame. jump is consumed only when a jump happens, so a
// press made in the air fires on landing.
func (m *Model) Update(in input.Sample, jump *input.Latch, dt float64) Report {
	if m.disabled || dt <= 0 {
		return Report{Skipped: true}
	}
	if m.view == nil || m.probe == nil {
		logger.Once("locomotion.missing-view", "Locomotion update skipped: camera or world probe missing")
		return Report{Skipped: true}
	}
	in = in.Clamped()

	m.updateIdle(in, dt)

	dir := m.resolveDirection(in.Move)
	targetSpeed := m.cfg.WalkSpeed
	m.state.Sprinting = in.Sprint && !m.state.Idle
	if m.state.Sprinting {
		targetSpeed = m.cfg.SprintSpeed
	}

	rate := m.cfg.Deceleration
	if dir.Dot(dir) > activeInputSqr {
		rate = m.cfg.Acceleration
	}
	v := m.state.Velocity
	planar := world.MoveTowards(mgl64.Vec3{v.X(), 0, v.Z()}, dir.Mul(targetSpeed), rate*dt)
	v = mgl64.Vec3{planar.X(), v.Y(), planar.Z()}

	m.integrate(v, dt)

	wasGrounded := m.state.Grounded
	ground, grounded := m.probe.Raycast(m.probeOrigin(m.state.Position), down, m.cfg.ProbeDistance)
	m.state.Grounded = grounded

	var report Report
	switch {
	case grounded && jump != nil && jump.Consume():
		v[1] = m.cfg.JumpImpulse
		report.Jumped = true
	case !grounded:
		v[1] += m.cfg.Gravity * dt
	case v.Y() < 0:
		v[1] = 0
	}
	m.state.Velocity = v
	if m.cfg.GroundClamp && grounded && v.Y() <= 0 && m.state.Position.Y() > ground.Point.Y() {
		// Rest the feet on the surface the probe found.
		m.state.Position[1] = ground.Point.Y()
	}

	report.Landed = grounded && !wasGrounded
	report.LeftGround = !grounded && wasGrounded
	return report
}

func (m *Model) updateIdle(in input.Sample, dt float64) {
	if in.Idle() {
		m.idleTimer += dt
	} else {
		m.idleTimer = 0
	}
	v := m.state.Velocity
	planarSqr := v.X()*v.X() + v.Z()*v.Z()
	m.state.Idle = m.idleTimer >= m.cfg.IdleDelay && planarSqr < idleResidualSpeedSqr
}

// resolveDirection maps the stick onto the ground plane relative to the
// camera. Degenerate camera axes contribute nothing.
func (m *Model) resolveDirection(move mgl64.Vec2) mgl64.Vec3 {
	forward := flatten(m.view.Forward())
	right := flatten(m.view.Right())
	dir := forward.Mul(move.Y()).Add(right.Mul(move.X()))
	if dir.Dot(dir) > 1 {
		dir = dir.Normalize()
	}
	return dir
}

func (m *Model) integrate(v mgl64.Vec3, dt float64) {
	pos := m.state.Position
	next := pos.Add(v.Mul(dt))

	if m.cfg.GroundClamp && next.Y() < pos.Y() {
		// Stop a downward move at the first surface under the new footprint.
		origin := mgl64.Vec3{next.X(), pos.Y() + m.cfg.ProbeOffset, next.Z()}
		reach := m.cfg.ProbeOffset + (pos.Y() - next.Y())
		if hit, ok := m.probe.Raycast(origin, down, reach); ok && next.Y() < hit.Point.Y() {
			next[1] = hit.Point.Y()
		}
	}
	m.state.Position = next

	if v.X()*v.X()+v.Z()*v.Z() > turnSpeedSqr {
		heading := math.Atan2(v.X(), v.Z())
		target := mgl64.QuatRotate(heading, world.Up)
		m.state.Facing = slerpShortest(m.state.Facing, target, m.cfg.RotationSpeed*dt)
	}
}

func (m *Model) probeGround(pos mgl64.Vec3) bool {
	if m.probe == nil {
		return false
	}
	_, ok := m.probe.Raycast(m.probeOrigin(pos), down, m.cfg.ProbeDistance)
	return ok
}

func (m *Model) probeOrigin(pos mgl64.Vec3) mgl64.Vec3 {
	return pos.Add(world.Up.Mul(m.cfg.ProbeOffset))
}

func yawQuat(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), world.Up)
}
