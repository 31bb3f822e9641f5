package fall

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/audio"
	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/event"
	"github.com/Versifine/baguette/internal/world"
)

type body struct {
	pos       mgl64.Vec3
	teleports []mgl64.Vec3
}

func (b *body) Position() mgl64.Vec3 { return b.pos }
func (b *body) Teleport(p mgl64.Vec3) {
	b.pos = p
	b.teleports = append(b.teleports, p)
}

func island() *world.Static {
	w := world.NewStatic()
	w.Add("island", world.AABB{Min: mgl64.Vec3{-5, -2, -5}, Max: mgl64.Vec3{5, 1, 5}})
	return w
}

func TestRespawnAboveGroundAfterDelay(t *testing.T) {
	cfg := config.Default().Fall
	b := &body{pos: mgl64.Vec3{4, 1, 4}}
	rec := &audio.Recorder{}
	bus := event.NewBus()
	var respawns []event.RespawnEvent
	bus.Subscribe(event.EventRespawned, func(raw any) {
		respawns = append(respawns, raw.(event.RespawnEvent))
	})
	fells := 0
	bus.Subscribe(event.EventFell, func(any) { fells++ })

	w := New(cfg, b, island(), rec, bus)
	w.Update(0.1)

	// Walk off and drop through the threshold.
	b.pos = mgl64.Vec3{6, -5, 4}
	w.Update(0.1)
	if w.LastSafe() != (mgl64.Vec3{6, -5, 4}) {
		t.Fatalf("LastSafe = %v, want the last point above the threshold", w.LastSafe())
	}
	b.pos = mgl64.Vec3{6, -11, 4}
	w.Update(0.1)
	if !w.Falling() || fells != 1 || rec.Count(audio.Scorpion) != 1 {
		t.Fatalf("Falling=%v fells=%d scorpion=%d", w.Falling(), fells, rec.Count(audio.Scorpion))
	}

	for i := 0; i < 13; i++ {
		b.pos[1] -= 3
		w.Update(0.1)
	}
	if len(b.teleports) != 0 {
		t.Fatalf("respawned early at %v", b.teleports)
	}
	for i := 0; i < 3 && len(b.teleports) == 0; i++ {
		w.Update(0.1)
	}
	if len(b.teleports) != 1 {
		t.Fatalf("teleports = %v, want exactly one after the delay", b.teleports)
	}

	// Last safe point is off the island, so no ground: fallback height.
	want := mgl64.Vec3{6, 0, 4}
	if !b.teleports[0].ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("respawn = %v, want %v", b.teleports[0], want)
	}
	if len(respawns) != 1 || respawns[0].FoundGround {
		t.Fatalf("respawn events = %+v", respawns)
	}
	if w.Falling() {
		t.Fatal("still falling after respawn")
	}
}

func TestRespawnFindsGroundFromAbove(t *testing.T) {
	cfg := config.Default().Fall
	b := &body{pos: mgl64.Vec3{2, 1, -3}}
	w := New(cfg, b, island(), nil, nil)
	w.Update(0.1)

	got, found := w.RespawnPoint()
	if !found {
		t.Fatal("ground should be found under the last safe point")
	}
	want := mgl64.Vec3{2, 1 + cfg.HeightAboveGround, -3}
	if !got.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("RespawnPoint = %v, want %v", got, want)
	}

	b.pos = mgl64.Vec3{2, -20, -3}
	w.Update(0.1)
	for i := 0; i < 20; i++ {
		w.Update(0.1)
	}
	if len(b.teleports) != 1 || !b.teleports[0].ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("teleports = %v, want [%v]", b.teleports, want)
	}
}

func TestFallTriggersOncePerDrop(t *testing.T) {
	cfg := config.Default().Fall
	rec := &audio.Recorder{}
	b := &body{pos: mgl64.Vec3{0, -50, 0}}
	w := New(cfg, b, nil, rec, nil)
	for i := 0; i < 5; i++ {
		w.Update(0.1)
	}
	if rec.Count(audio.Scorpion) != 1 {
		t.Fatalf("scorpion cues = %d, want 1", rec.Count(audio.Scorpion))
	}
}
