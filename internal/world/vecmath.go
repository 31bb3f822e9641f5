package world

import "github.com/go-gl/mathgl/mgl64"

// MoveTowards steps current toward target by at most maxDelta and never
// overshoots.
func MoveTowards(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist < 1e-12 {
		return target
	}
	if maxDelta <= 0 {
		return current
	}
	return current.Add(delta.Mul(maxDelta / dist))
}
