package health

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/audio"
	"github.com/Versifine/baguette/internal/event"
)

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		name      string
		hits      []float64
		wantHP    float64
		wantAlive bool
		wantHurt  int
	}{
		{"single hit", []float64{10}, 90, true, 1},
		{"several hits", []float64{10, 25, 5}, 60, true, 3},
		{"exact kill", []float64{50, 50}, 0, false, 2},
		{"overkill clamps", []float64{250}, 0, false, 1},
		{"ignored after death", []float64{100, 10, 10}, 0, false, 1},
		{"non-positive ignored", []float64{0, -5}, 100, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &audio.Recorder{}
			h := New(100, rec, nil)
			for _, d := range tt.hits {
				h.TakeDamage(d)
			}
			if h.Current() != tt.wantHP {
				t.Errorf("Current = %v, want %v", h.Current(), tt.wantHP)
			}
			if h.Alive() != tt.wantAlive {
				t.Errorf("Alive = %v, want %v", h.Alive(), tt.wantAlive)
			}
			if got := rec.Count(audio.SteveDamage); got != tt.wantHurt {
				t.Errorf("damage cues = %d, want %d", got, tt.wantHurt)
			}
		})
	}
}

func TestDeathFiresOnce(t *testing.T) {
	rec := &audio.Recorder{}
	bus := event.NewBus()
	h := New(30, rec, bus)
	h.Locate = func() mgl64.Vec3 { return mgl64.Vec3{1, 2, 3} }

	deaths := 0
	h.OnDeath = func() { deaths++ }

	var died []event.DeathEvent
	bus.Subscribe(event.EventDied, func(raw any) {
		died = append(died, raw.(event.DeathEvent))
	})
	var damaged []event.DamageEvent
	bus.Subscribe(event.EventDamaged, func(raw any) {
		damaged = append(damaged, raw.(event.DamageEvent))
	})

	for i := 0; i < 5; i++ {
		h.TakeDamage(20)
	}

	if deaths != 1 || len(died) != 1 {
		t.Fatalf("deaths = %d, died events = %d, want 1 each", deaths, len(died))
	}
	if died[0].Position != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("death position = %v", died[0].Position)
	}
	if len(damaged) != 2 || damaged[1].NewHP != 0 {
		t.Fatalf("damage events = %+v", damaged)
	}

	want := []audio.Cue{audio.SteveDamage, audio.Scorpion, audio.SteveDamage}
	got := rec.Cues()
	if len(got) != len(want) {
		t.Fatalf("cues = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cues = %v, want %v", got, want)
		}
	}
}

func TestHeal(t *testing.T) {
	h := New(100, nil, nil)
	h.TakeDamage(40)
	h.Heal(15)
	if h.Current() != 75 {
		t.Fatalf("Current = %v, want 75", h.Current())
	}
	h.Heal(500)
	if h.Current() != 100 || h.Fraction() != 1 {
		t.Fatalf("Current = %v Fraction = %v, want clamped to max", h.Current(), h.Fraction())
	}

	h.TakeDamage(100)
	h.Heal(50)
	if h.Current() != 0 || h.Alive() {
		t.Fatal("Heal revived a dead player")
	}
}
