package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/logger"
	"github.com/Versifine/baguette/internal/world"
)

type Config = config.CameraConfig

// Target is what the rig orbits.
type Target interface {
	Position() mgl64.Vec3
	FacingYaw() float64
}

// Rig is a trailing third-person camera. Yaw and pitch are in degrees; yaw
// turns clockwise from +Z and positive pitch looks down.
type Rig struct {
	cfg    Config
	target Target

	yaw      float64
	pitch    float64
	position mgl64.Vec3
	forward  mgl64.Vec3
}

// New places the rig behind the target, already at its desired position.
func New(cfg Config, target Target) *Rig {
	r := &Rig{cfg: cfg, target: target, forward: mgl64.Vec3{0, 0, 1}}
	r.pitch = r.clampPitch(cfg.InitialPitch)
	if target != nil {
		r.yaw = normalizeYaw(target.FacingYaw())
		r.Snap()
	}
	return r
}

func (r *Rig) SetTarget(t Target) {
	r.target = t
}

// SetConfig swaps tuning and re-clamps pitch into the new range.
func (r *Rig) SetConfig(cfg Config) {
	r.cfg = cfg
	r.pitch = r.clampPitch(r.pitch)
}

func (r *Rig) Config() Config {
	return r.cfg
}

// Update applies look input and trails the target. Call after the target has
// moved for the frame.
func (r *Rig) Update(look mgl64.Vec2, dt float64) {
	if dt < 0 {
		dt = 0
	}
	r.yaw = normalizeYaw(r.yaw + look.X()*r.cfg.RotateSpeed*dt)
	r.pitch = r.clampPitch(r.pitch - look.Y()*r.cfg.RotateSpeed*dt)

	if r.target == nil {
		logger.Once("camera.missing-target", "Camera update skipped: no target")
		return
	}

	desired := r.Desired()
	t := mgl64.Clamp(r.cfg.SmoothSpeed*dt, 0, 1)
	r.position = r.position.Add(desired.Sub(r.position).Mul(t))
	r.lookAtTarget()
}

// Desired is where the camera wants to be this frame. It does not change
// rig state.
func (r *Rig) Desired() mgl64.Vec3 {
	if r.target == nil {
		return r.position
	}
	return r.pivot().Sub(direction(r.yaw, r.pitch).Mul(r.cfg.Distance))
}

// Snap moves the camera straight to its desired position.
func (r *Rig) Snap() {
	r.position = r.Desired()
	r.lookAtTarget()
}

func (r *Rig) Position() mgl64.Vec3 {
	return r.position
}

func (r *Rig) Yaw() float64 {
	return r.yaw
}

func (r *Rig) Pitch() float64 {
	return r.pitch
}

// Forward is the unit look direction.
func (r *Rig) Forward() mgl64.Vec3 {
	return r.forward
}

// Right is perpendicular to Forward on the ground plane, or zero when the
// camera looks straight up or down.
func (r *Rig) Right() mgl64.Vec3 {
	right := world.Up.Cross(r.forward)
	l := right.Len()
	if l < 1e-9 {
		return mgl64.Vec3{}
	}
	return right.Mul(1 / l)
}

func (r *Rig) pivot() mgl64.Vec3 {
	return r.target.Position().Add(world.Up.Mul(r.cfg.Height))
}

func (r *Rig) lookAtTarget() {
	d := r.pivot().Sub(r.position)
	l := d.Len()
	if l < 1e-9 {
		return
	}
	r.forward = d.Mul(1 / l)
}

func (r *Rig) clampPitch(pitch float64) float64 {
	if math.IsNaN(pitch) {
		pitch = 0
	}
	return mgl64.Clamp(pitch, r.cfg.MinPitch, r.cfg.MaxPitch)
}

// direction is the unit vector from the camera toward its pivot.
func direction(yawDeg, pitchDeg float64) mgl64.Vec3 {
	yaw := mgl64.DegToRad(yawDeg)
	pitch := mgl64.DegToRad(pitchDeg)
	return mgl64.Vec3{
		math.Sin(yaw) * math.Cos(pitch),
		-math.Sin(pitch),
		math.Cos(yaw) * math.Cos(pitch),
	}
}

// normalizeYaw wraps into (-180, 180].
func normalizeYaw(yaw float64) float64 {
	if math.IsNaN(yaw) || math.IsInf(yaw, 0) {
		return 0
	}
	yaw = math.Mod(yaw+180, 360)
	if yaw <= 0 {
		yaw += 360
	}
	return yaw - 180
}
