package animation

// Damped is a Player that eases the speed parameter toward each new target
// over DampTime seconds, the way the blend tree is fed in game. Call Tick
// once per frame after SetSpeed.
type Damped struct {
	DampTime float64

	speed   float64
	target  float64
	jumping bool
}

func NewDamped(dampTime float64) *Damped {
	return &Damped{DampTime: dampTime}
}

func (d *Damped) SetSpeed(v float64) {
	d.target = v
}

func (d *Damped) SetJumping(v bool) {
	d.jumping = v
}

func (d *Damped) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	if d.DampTime <= 0 {
		d.speed = d.target
		return
	}
	d.speed += (d.target - d.speed) * clamp01(dt/d.DampTime)
}

// Speed is the damped blend value.
func (d *Damped) Speed() float64 {
	return d.speed
}

// Target is the last undamped value pushed by the mapper.
func (d *Damped) Target() float64 {
	return d.target
}

func (d *Damped) Jumping() bool {
	return d.jumping
}
