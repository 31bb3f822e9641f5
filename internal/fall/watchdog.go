package fall

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/audio"
	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/countdown"
	"github.com/Versifine/baguette/internal/event"
	"github.com/Versifine/baguette/internal/world"
)

type Config = config.FallConfig

// Subject is the character being watched.
type Subject interface {
	Position() mgl64.Vec3
	Teleport(pos mgl64.Vec3)
}

// Watchdog brings the player back after a fall out of the level. It
// remembers the last position above the threshold and, after a delay,
// respawns above the ground found there.
type Watchdog struct {
	cfg     Config
	subject Subject
	probe   world.Prober
	cues    audio.Dispatcher
	bus     *event.Bus

	lastSafe mgl64.Vec3
	falling  bool
	fellFrom mgl64.Vec3
	timer    *countdown.Timer
}

func New(cfg Config, subject Subject, probe world.Prober, cues audio.Dispatcher, bus *event.Bus) *Watchdog {
	if cues == nil {
		cues = audio.Nop{}
	}
	w := &Watchdog{cfg: cfg, subject: subject, probe: probe, cues: cues, bus: bus}
	if subject != nil {
		w.lastSafe = subject.Position()
	}
	w.timer = countdown.New(w.respawn)
	return w
}

func (w *Watchdog) Update(dt float64) {
	if w.subject == nil {
		return
	}
	pos := w.subject.Position()
	switch {
	case w.falling:
	case pos.Y() < w.cfg.Threshold:
		w.falling = true
		w.fellFrom = pos
		slog.Info("Player fell out of the level", "position", pos, "last_safe", w.lastSafe)
		w.cues.Play(audio.Scorpion)
		w.bus.Publish(event.EventFell, event.DeathEvent{Position: pos})
		w.timer.Start(w.cfg.RespawnDelay)
	default:
		w.lastSafe = pos
	}
	w.timer.Tick(dt)
}

// RespawnPoint is where the player would land if respawned now, and whether
// ground was found above the last safe position.
func (w *Watchdog) RespawnPoint() (mgl64.Vec3, bool) {
	if w.probe != nil {
		start := w.lastSafe.Add(world.Up.Mul(w.cfg.SearchHeight))
		if hit, ok := w.probe.Raycast(start, mgl64.Vec3{0, -1, 0}, 2*w.cfg.SearchHeight); ok {
			return hit.Point.Add(world.Up.Mul(w.cfg.HeightAboveGround)), true
		}
	}
	return w.lastSafe.Add(world.Up.Mul(w.cfg.FallbackHeight)), false
}

func (w *Watchdog) respawn() {
	to, found := w.RespawnPoint()
	if found {
		slog.Info("Respawning player above ground", "position", to)
	} else {
		slog.Warn("No ground found, respawning above last safe position", "position", to)
	}
	w.subject.Teleport(to)
	w.falling = false
	w.bus.Publish(event.EventRespawned, event.RespawnEvent{From: w.fellFrom, To: to, FoundGround: found})
}

func (w *Watchdog) Falling() bool {
	return w.falling
}

func (w *Watchdog) LastSafe() mgl64.Vec3 {
	return w.lastSafe
}
