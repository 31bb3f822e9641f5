// Package game wires the player, the level and every collaborator into one
// scene and steps it frame by frame.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/audio"
	"github.com/Versifine/baguette/internal/character"
	"github.com/Versifine/baguette/internal/combat"
	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/door"
	"github.com/Versifine/baguette/internal/enemy"
	"github.com/Versifine/baguette/internal/event"
	"github.com/Versifine/baguette/internal/fall"
	"github.com/Versifine/baguette/internal/input"
	"github.com/Versifine/baguette/internal/quest"
	"github.com/Versifine/baguette/internal/scenery"
	"github.com/Versifine/baguette/internal/world"
)

const (
	giverFrameInterval = 0.3
	giverFrames        = 3
)

type Scene struct {
	cfg *config.Config
	bus *event.Bus

	world    *world.Static
	player   *character.Character
	enemies  []*enemy.Enemy
	targets  []combat.Target
	swing    *combat.Swing
	watchdog *fall.Watchdog
	quest    *quest.Quest
	door     *door.Door
	giver    *scenery.Cycler
	blinker  *scenery.Blinker

	cues   audio.Dispatcher
	engine *audio.Engine

	interact input.Latch
	tuning   atomic.Pointer[config.Config]
	frame    uint64
	quit     bool

	// FrameLimit stops Run after that many frames when non-zero.
	FrameLimit uint64
}

// New builds the level from cfg. A nil cues dispatcher means the scene owns
// its audio: a beep engine when audio is enabled, silence otherwise.
func New(cfg *config.Config, cues audio.Dispatcher) (*Scene, error) {
	if cfg == nil {
		return nil, errors.New("game: nil config")
	}
	s := &Scene{cfg: cfg, bus: event.NewBus(), world: world.NewStatic(), cues: cues}

	if s.cues == nil {
		s.cues = audio.Nop{}
		if cfg.Audio.Enabled {
			engine, err := audio.NewEngine(cfg.Audio)
			if err != nil {
				return nil, fmt.Errorf("game: %w", err)
			}
			s.engine = engine
			s.cues = engine
			engine.StartMusic()
		}
	}

	for _, b := range cfg.Scene.Boxes {
		s.world.Add(b.Name, world.AABB{Min: vec(b.Min), Max: vec(b.Max)})
	}

	s.player = character.New(cfg, s.world, vec(cfg.Scene.Spawn), s.cues, s.bus)

	for i, pos := range cfg.Scene.Enemies {
		e := enemy.New(fmt.Sprintf("enemy-%d", i+1), cfg.Enemy, vec(pos), s.bus)
		s.enemies = append(s.enemies, e)
		s.targets = append(s.targets, e)
	}
	s.swing = combat.New(cfg.Combat, s.bus)
	s.watchdog = fall.New(cfg.Fall, s.player, s.world, s.cues, s.bus)
	s.quest = quest.New(cfg.Quest, vec(cfg.Scene.Giver), vec(cfg.Scene.Baker), s.cues, s.bus)
	s.door = door.New(cfg.Door, vec(cfg.Scene.Door), s.cues, s.bus)
	s.door.OnQuit = func() { s.quit = true }

	s.giver = scenery.NewCycler(giverFrameInterval, giverFrames)
	var blink *world.Box
	if name := cfg.Scene.Blinker.Box; name != "" {
		b, ok := s.world.Box(name)
		if !ok {
			slog.Warn("Blinker box not found", "box", name)
		}
		blink = b
	}
	s.blinker = scenery.NewBlinker(blink, cfg.Scene.Blinker.Interval)

	slog.Info("Scene ready",
		"boxes", len(cfg.Scene.Boxes),
		"enemies", len(s.enemies),
		"spawn", s.player.Position(),
		"grounded", s.player.Grounded(),
		"audio", s.engine != nil,
	)
	return s, nil
}

// Step advances the scene by one frame: player, then collaborators, then
// audio. Tuning queued by ApplyTuning takes effect before anything moves.
func (s *Scene) Step(in input.Sample, dt float64) {
	if dt <= 0 || s.quit {
		return
	}
	s.applyTuning()
	s.frame++
	in = in.Clamped()
	s.interact.Update(in.Interact)

	s.player.Update(in, dt)
	pos := s.player.Position()

	for _, e := range s.enemies {
		e.Update(s.player, dt)
	}
	s.swing.Update(in.Attack && s.player.Alive(), pos, s.targets, dt)
	s.watchdog.Update(dt)

	pressed := s.interact.Pressed()
	s.quest.Update(pos, pressed, dt)
	s.door.Update(pos, pressed, dt)

	s.giver.Update(dt)
	s.blinker.Update(dt)

	if s.engine != nil {
		s.engine.Update(dt)
	}
}

// ApplyTuning queues cfg's locomotion, camera and animation tuning for the
// next frame boundary. Safe to call from another goroutine.
func (s *Scene) ApplyTuning(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.tuning.Store(cfg)
}

func (s *Scene) applyTuning() {
	cfg := s.tuning.Swap(nil)
	if cfg == nil {
		return
	}
	s.player.SetTuning(cfg.Locomotion, cfg.Camera, cfg.Animation.DampTime)
	s.cfg.Locomotion = cfg.Locomotion
	s.cfg.Camera = cfg.Camera
	s.cfg.Animation = cfg.Animation
	slog.Info("Tuning applied", "frame", s.frame)
}

// Run steps the scene at fps with a fixed frame time until ctx is cancelled,
// the door closes the game, FrameLimit is reached, or a finite source runs
// out.
func (s *Scene) Run(ctx context.Context, src input.Source, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("game: fps must be positive, got %d", fps)
	}
	if src == nil {
		return errors.New("game: nil input source")
	}
	dt := 1 / float64(fps)
	finite, _ := src.(interface{ Done() bool })

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logState("Scene stopped")
			return nil
		case <-ticker.C:
			s.Step(src.Sample(), dt)
			if s.frame%uint64(fps) == 0 {
				s.logState("Scene state")
			}
			if s.quit || (s.FrameLimit > 0 && s.frame >= s.FrameLimit) || (finite != nil && finite.Done()) {
				s.logState("Scene finished")
				return nil
			}
		}
	}
}

func (s *Scene) logState(msg string) {
	st := s.player.State()
	slog.Info(msg,
		"frame", s.frame,
		"position", st.Position,
		"speed", st.PlanarSpeed(),
		"grounded", st.Grounded,
		"hp", s.player.Health().Current(),
		"quest", s.quest.Step(),
	)
}

func (s *Scene) Bus() *event.Bus {
	return s.bus
}

func (s *Scene) World() *world.Static {
	return s.world
}

func (s *Scene) Player() *character.Character {
	return s.player
}

func (s *Scene) Enemies() []*enemy.Enemy {
	return s.enemies
}

func (s *Scene) Quest() *quest.Quest {
	return s.quest
}

func (s *Scene) Door() *door.Door {
	return s.door
}

func (s *Scene) Watchdog() *fall.Watchdog {
	return s.watchdog
}

// GiverFrame is the current sprite frame of the quest giver.
func (s *Scene) GiverFrame() int {
	return s.giver.Frame()
}

// Engine is nil unless the scene built its own audio.
func (s *Scene) Engine() *audio.Engine {
	return s.engine
}

func (s *Scene) Frame() uint64 {
	return s.frame
}

// Quit reports whether the game asked to close.
func (s *Scene) Quit() bool {
	return s.quit
}

func vec(v config.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}
