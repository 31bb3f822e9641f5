package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var Up = mgl64.Vec3{0, 1, 0}

// Prober answers synchronous ray queries against the environment.
type Prober interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool)
}

type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Box      string
}

// AABB is an axis-aligned box; Min must be component-wise <= Max.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func (b AABB) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

type Box struct {
	Name    string
	Bounds  AABB
	Enabled bool
}

// Static is the fixed level geometry. Boxes can be toggled but not moved.
type Static struct {
	boxes []*Box
	index map[string]*Box
}

func NewStatic() *Static {
	return &Static{index: make(map[string]*Box)}
}

// Add registers an enabled box. A later box with the same name shadows the
// earlier one for Box lookups.
func (s *Static) Add(name string, bounds AABB) *Box {
	b := &Box{Name: name, Bounds: normalize(bounds), Enabled: true}
	s.boxes = append(s.boxes, b)
	if name != "" {
		s.index[name] = b
	}
	return b
}

func (s *Static) Box(name string) (*Box, bool) {
	if s == nil {
		return nil, false
	}
	b, ok := s.index[name]
	return b, ok
}

func (s *Static) Boxes() []*Box {
	if s == nil {
		return nil
	}
	out := make([]*Box, len(s.boxes))
	copy(out, s.boxes)
	return out
}

// Raycast returns the nearest enabled box surface hit by the ray within
// maxDist. A ray that starts inside a box does not report that box.
func (s *Static) Raycast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	if s == nil || maxDist <= 0 {
		return Hit{}, false
	}
	length := dir.Len()
	if nearlyZero(length) {
		return Hit{}, false
	}
	dir = dir.Mul(1 / length)

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, b := range s.boxes {
		if !b.Enabled {
			continue
		}
		t, normal, ok := rayAABB(origin, dir, b.Bounds)
		if !ok || t > maxDist || t >= best.Distance {
			continue
		}
		best = Hit{
			Point:    origin.Add(dir.Mul(t)),
			Normal:   normal,
			Distance: t,
			Box:      b.Name,
		}
		found = true
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}

// rayAABB is the slab test. It reports the entry distance only; rays whose
// entry lies behind the origin (origin inside or past the box) miss.
func rayAABB(origin, dir mgl64.Vec3, box AABB) (float64, mgl64.Vec3, bool) {
	tEnter := math.Inf(-1)
	tExit := math.Inf(1)
	var normal mgl64.Vec3

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		lo, hi := box.Min[axis], box.Max[axis]
		if nearlyZero(d) {
			if o < lo || o > hi {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tEnter {
			tEnter = t1
			normal = mgl64.Vec3{}
			normal[axis] = sign
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit {
			return 0, mgl64.Vec3{}, false
		}
	}
	if tEnter < 0 {
		return 0, mgl64.Vec3{}, false
	}
	return tEnter, normal, true
}

func normalize(b AABB) AABB {
	for axis := 0; axis < 3; axis++ {
		if b.Min[axis] > b.Max[axis] {
			b.Min[axis], b.Max[axis] = b.Max[axis], b.Min[axis]
		}
	}
	return b
}

func nearlyZero(v float64) bool {
	return math.Abs(v) < 1e-9
}
