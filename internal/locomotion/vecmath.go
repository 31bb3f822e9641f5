package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// flatten drops the vertical component and normalizes, or returns zero when
// nothing horizontal is left.
func flatten(v mgl64.Vec3) mgl64.Vec3 {
	v[1] = 0
	l := v.Len()
	if l < 1e-9 || math.IsNaN(l) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// slerpShortest interpolates along the shorter arc with t clamped to [0, 1].
func slerpShortest(from, to mgl64.Quat, t float64) mgl64.Quat {
	t = mgl64.Clamp(t, 0, 1)
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t).Normalize()
}
