package scenery

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/world"
)

func TestCyclerWrapsAfterThreeFrames(t *testing.T) {
	c := NewCycler(0.3, 3)
	var frames []int
	for i := 0; i < 40; i++ {
		if c.Update(0.025) {
			frames = append(frames, c.Frame())
		}
	}
	// 1 s at 0.3 s per frame: three changes, back to frame 0.
	want := []int{1, 2, 0}
	if len(frames) != len(want) {
		t.Fatalf("frames = %v, want %v", frames, want)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Fatalf("frames = %v, want %v", frames, want)
		}
	}
}

func TestCyclerSingleFrameNeverChanges(t *testing.T) {
	c := NewCycler(0.1, 1)
	for i := 0; i < 10; i++ {
		if c.Update(1) {
			t.Fatal("single frame cycler reported a change")
		}
	}
}

func TestBlinkerTogglesCollision(t *testing.T) {
	w := world.NewStatic()
	box := w.Add("bakery", world.AABB{Min: mgl64.Vec3{-1, 0, -1}, Max: mgl64.Vec3{1, 2, 1}})
	b := NewBlinker(box, 1)

	probe := func() bool {
		_, ok := w.Raycast(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}, 10)
		return ok
	}
	if !probe() {
		t.Fatal("bakery should start solid")
	}

	var states []bool
	for i := 0; i < 30; i++ {
		b.Update(0.1)
		states = append(states, probe())
	}
	// Toggles at 1 s and 2 s, within float drift of the tenth frame.
	if states[5] != true || states[15] != false || states[25] != true {
		t.Fatalf("solid at 0.6/1.6/2.6 s = %v/%v/%v, want true/false/true", states[5], states[15], states[25])
	}
}

func TestBlinkerWithoutBox(t *testing.T) {
	b := NewBlinker(nil, 1)
	b.Update(5)
	if b.Box() != nil {
		t.Fatal("unexpected box")
	}
}
