package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Versifine/baguette/internal/input"
)

const stickDeadZone = 0.2

// binding maps one action to keys and standard gamepad buttons.
type binding struct {
	keys    []ebiten.Key
	buttons []ebiten.StandardGamepadButton
}

var (
	bindJump     = binding{keys: []ebiten.Key{ebiten.KeySpace}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom}}
	bindSprint   = binding{keys: []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontTopLeft}}
	bindAttack   = binding{keys: []ebiten.Key{ebiten.KeyJ}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft}}
	bindInteract = binding{keys: []ebiten.Key{ebiten.KeyE}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightTop}}
)

// collector reads keyboard and the first standard-layout gamepad into one
// Sample per tick. WASD moves, the arrow keys look.
type collector struct {
	pads []ebiten.GamepadID
}

func (c *collector) Sample() input.Sample {
	c.pads = ebiten.AppendGamepadIDs(c.pads[:0])
	pad, hasPad := c.pad()

	s := input.Sample{
		Move: mgl64.Vec2{
			keyAxis(ebiten.KeyA, ebiten.KeyD),
			keyAxis(ebiten.KeyS, ebiten.KeyW),
		},
		Look: mgl64.Vec2{
			keyAxis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight),
			keyAxis(ebiten.KeyArrowDown, ebiten.KeyArrowUp),
		},
		Jump:     c.held(bindJump, pad, hasPad),
		Sprint:   c.held(bindSprint, pad, hasPad),
		Attack:   c.held(bindAttack, pad, hasPad),
		Interact: c.held(bindInteract, pad, hasPad),
	}
	if hasPad {
		// Stick up reads negative.
		s.Move = s.Move.Add(mgl64.Vec2{
			stick(pad, ebiten.StandardGamepadAxisLeftStickHorizontal),
			-stick(pad, ebiten.StandardGamepadAxisLeftStickVertical),
		})
		s.Look = s.Look.Add(mgl64.Vec2{
			stick(pad, ebiten.StandardGamepadAxisRightStickHorizontal),
			-stick(pad, ebiten.StandardGamepadAxisRightStickVertical),
		})
	}
	return s.Clamped()
}

func (c *collector) pad() (ebiten.GamepadID, bool) {
	for _, id := range c.pads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}

func (c *collector) held(b binding, pad ebiten.GamepadID, hasPad bool) bool {
	for _, k := range b.keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	if !hasPad {
		return false
	}
	for _, btn := range b.buttons {
		if ebiten.IsStandardGamepadButtonPressed(pad, btn) {
			return true
		}
	}
	return false
}

func keyAxis(neg, pos ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(neg) {
		v--
	}
	if ebiten.IsKeyPressed(pos) {
		v++
	}
	return v
}

func stick(pad ebiten.GamepadID, axis ebiten.StandardGamepadAxis) float64 {
	v := ebiten.StandardGamepadAxisValue(pad, axis)
	if math.Abs(v) < stickDeadZone {
		return 0
	}
	return v
}
