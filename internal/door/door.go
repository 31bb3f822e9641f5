package door

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/audio"
	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/countdown"
	"github.com/Versifine/baguette/internal/event"
)

type Config = config.DoorConfig

const hintOpen = "[E] Open the door"

// Door ends the game when opened: it plays the game-over cue and calls OnQuit
// after QuitDelay. It can only be opened once.
type Door struct {
	cfg      Config
	position mgl64.Vec3
	cues     audio.Dispatcher
	bus      *event.Bus

	hint      string
	triggered bool
	quit      *countdown.Timer

	OnQuit func()
}

func New(cfg Config, pos mgl64.Vec3, cues audio.Dispatcher, bus *event.Bus) *Door {
	if cues == nil {
		cues = audio.Nop{}
	}
	d := &Door{cfg: cfg, position: pos, cues: cues, bus: bus}
	d.quit = countdown.New(func() {
		slog.Info("Game is closing")
		if d.OnQuit != nil {
			d.OnQuit()
		}
	})
	return d
}

func (d *Door) Update(player mgl64.Vec3, interact bool, dt float64) {
	d.quit.Tick(dt)
	if d.triggered {
		return
	}
	if player.Sub(d.position).Len() > d.cfg.InteractDistance {
		d.hint = ""
		return
	}
	d.hint = hintOpen
	if interact {
		d.open()
	}
}

func (d *Door) open() {
	d.triggered = true
	d.hint = ""
	d.cues.Play(audio.GameOver)
	if d.cfg.Message != "" {
		slog.Error(d.cfg.Message)
	}
	d.bus.Publish(event.EventDoorOpened, event.DoorEvent{Position: d.position, Message: d.cfg.Message})
	d.quit.Start(d.cfg.QuitDelay)
}

func (d *Door) Hint() string {
	return d.hint
}

func (d *Door) Triggered() bool {
	return d.triggered
}

func (d *Door) Position() mgl64.Vec3 {
	return d.position
}
