package door

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/audio"
	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/event"
)

func TestDoorOpensOnceAndQuits(t *testing.T) {
	rec := &audio.Recorder{}
	bus := event.NewBus()
	opened := 0
	bus.Subscribe(event.EventDoorOpened, func(any) { opened++ })

	d := New(config.Default().Door, mgl64.Vec3{5, 0, 5}, rec, bus)
	quits := 0
	d.OnQuit = func() { quits++ }

	near := mgl64.Vec3{5, 0, 3}
	d.Update(near, false, 0.1)
	if d.Hint() != hintOpen {
		t.Fatalf("Hint = %q near the door", d.Hint())
	}

	for i := 0; i < 30; i++ {
		d.Update(near, true, 0.1)
		if i == 5 && quits != 0 {
			t.Fatal("quit before the delay")
		}
	}

	if !d.Triggered() || d.Hint() != "" {
		t.Fatalf("Triggered=%v Hint=%q", d.Triggered(), d.Hint())
	}
	if rec.Count(audio.GameOver) != 1 || opened != 1 || quits != 1 {
		t.Fatalf("game over cues=%d opened=%d quits=%d, want 1 each", rec.Count(audio.GameOver), opened, quits)
	}
}

func TestDoorIgnoresFarPlayer(t *testing.T) {
	rec := &audio.Recorder{}
	d := New(config.Default().Door, mgl64.Vec3{}, rec, nil)
	d.Update(mgl64.Vec3{0, 0, 3.5}, true, 0.1)
	if d.Triggered() || d.Hint() != "" || len(rec.Cues()) != 0 {
		t.Fatalf("Triggered=%v Hint=%q cues=%v", d.Triggered(), d.Hint(), rec.Cues())
	}
}

func TestDoorHintClearsWhenLeaving(t *testing.T) {
	d := New(config.Default().Door, mgl64.Vec3{}, nil, nil)
	d.Update(mgl64.Vec3{1, 0, 0}, false, 0.1)
	d.Update(mgl64.Vec3{10, 0, 0}, false, 0.1)
	if d.Hint() != "" {
		t.Fatalf("Hint = %q after leaving", d.Hint())
	}
}
