package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sample is one frame of player intent. It is read-only once produced.
type Sample struct {
	// Move is the planar stick: X strafes right, Y moves forward.
	Move mgl64.Vec2
	// Look turns the camera: X yaws right, Y tilts.
	Look mgl64.Vec2

	Jump     bool
	Sprint   bool
	Attack   bool
	Interact bool
}

// Source produces one Sample per frame.
type Source interface {
	Sample() Sample
}

// Clamped returns s with every axis limited to [-1, 1]. NaN axes become 0.
func (s Sample) Clamped() Sample {
	s.Move = clampAxes(s.Move)
	s.Look = clampAxes(s.Look)
	return s
}

// Idle reports whether the movement stick is within the dead zone.
func (s Sample) Idle() bool {
	return s.Move.Dot(s.Move) < MoveDeadZoneSqr
}

// MoveDeadZoneSqr is the squared stick magnitude below which movement input
// counts as released.
const MoveDeadZoneSqr = 0.01

func clampAxes(v mgl64.Vec2) mgl64.Vec2 {
	for i := range v {
		switch {
		case math.IsNaN(v[i]):
			v[i] = 0
		case v[i] > 1:
			v[i] = 1
		case v[i] < -1:
			v[i] = -1
		}
	}
	return v
}

// Latch turns a held button into a one-shot request. A press arms the latch;
// the request stays armed across frames until it is consumed or the button
// is released, so a jump pressed in the air still fires on landing while a
// held button never fires twice.
type Latch struct {
	held  bool
	armed bool
	edge  bool
}

// Update feeds the current button level. Call once per frame before
// Pressed or Consume.
func (l *Latch) Update(held bool) {
	l.edge = held && !l.held
	if l.edge {
		l.armed = true
	}
	if !held {
		l.armed = false
	}
	l.held = held
}

// Pressed reports whether the button went down this frame.
func (l *Latch) Pressed() bool {
	return l.edge
}

func (l *Latch) Armed() bool {
	return l.armed
}

// Consume returns the armed state and disarms the latch.
func (l *Latch) Consume() bool {
	if !l.armed {
		return false
	}
	l.armed = false
	return true
}

func (l *Latch) Reset() {
	*l = Latch{}
}
