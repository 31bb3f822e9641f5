package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name     string
		from, to mgl64.Vec3
		max      float64
		want     mgl64.Vec3
	}{
		{"step", mgl64.Vec3{}, mgl64.Vec3{0, 0, 10}, 2, mgl64.Vec3{0, 0, 2}},
		{"reach", mgl64.Vec3{0, 0, 9}, mgl64.Vec3{0, 0, 10}, 2, mgl64.Vec3{0, 0, 10}},
		{"diagonal", mgl64.Vec3{}, mgl64.Vec3{3, 0, 4}, 2.5, mgl64.Vec3{1.5, 0, 2}},
		{"zero step", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{5, 0, 0}, 0, mgl64.Vec3{1, 0, 0}},
		{"already there", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}, 0, mgl64.Vec3{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveTowards(tt.from, tt.to, tt.max)
			if !got.ApproxEqualThreshold(tt.want, 1e-12) {
				t.Fatalf("MoveTowards = %v, want %v", got, tt.want)
			}
		})
	}
}
