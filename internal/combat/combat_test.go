package combat

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/event"
)

type target struct {
	pos mgl64.Vec3
	hp  int
}

func (t *target) Position() mgl64.Vec3 { return t.pos }
func (t *target) Alive() bool          { return t.hp > 0 }
func (t *target) Hit(damage int) bool {
	t.hp -= damage
	return t.hp <= 0
}

func TestSwingHitsTargetsInRange(t *testing.T) {
	near := &target{pos: mgl64.Vec3{0, 0, 2}, hp: 100}
	edge := &target{pos: mgl64.Vec3{3, 0, 0}, hp: 25}
	far := &target{pos: mgl64.Vec3{0, 0, 5}, hp: 100}
	dead := &target{pos: mgl64.Vec3{1, 0, 0}, hp: 0}

	s := New(config.Default().Combat, nil)
	res := s.Update(true, mgl64.Vec3{}, []Target{near, edge, far, dead}, 0.016)

	if !res.Attacked || res.Hits != 2 || res.Defeated != 1 {
		t.Fatalf("Result = %+v, want 2 hits 1 defeated", res)
	}
	if near.hp != 75 || edge.hp != 0 || far.hp != 100 || dead.hp != 0 {
		t.Fatalf("hp near=%d edge=%d far=%d dead=%d", near.hp, edge.hp, far.hp, dead.hp)
	}
}

func TestSwingCooldown(t *testing.T) {
	cfg := config.Default().Combat
	dummy := &target{pos: mgl64.Vec3{1, 0, 0}, hp: 1000}
	s := New(cfg, nil)
	targets := []Target{dummy}

	attacks := 0
	for i := 0; i < 100; i++ {
		if s.Update(true, mgl64.Vec3{}, targets, 0.01).Attacked {
			attacks++
		}
	}
	// One second held: t=0.01, then after each 0.5 s cooldown.
	if attacks != 2 {
		t.Fatalf("attacks = %d in one second, want 2", attacks)
	}
	if dummy.hp != 1000-2*cfg.Damage {
		t.Fatalf("hp = %d", dummy.hp)
	}
}

func TestSwingNeedsButton(t *testing.T) {
	dummy := &target{pos: mgl64.Vec3{1, 0, 0}, hp: 100}
	s := New(config.Default().Combat, nil)
	for i := 0; i < 10; i++ {
		if s.Update(false, mgl64.Vec3{}, []Target{dummy}, 0.1).Attacked {
			t.Fatal("attacked without the button")
		}
	}
	if !s.Ready() {
		t.Fatal("Ready = false after idling")
	}
}

func TestSwingPublishesMiss(t *testing.T) {
	bus := event.NewBus()
	var got []event.AttackEvent
	bus.Subscribe(event.EventAttackResolved, func(raw any) {
		got = append(got, raw.(event.AttackEvent))
	})
	s := New(config.Default().Combat, bus)
	s.Update(true, mgl64.Vec3{}, nil, 0.1)
	if len(got) != 1 || got[0].Hits != 0 {
		t.Fatalf("attack events = %+v, want one miss", got)
	}
}
