// Package scenery holds the timed cosmetic and environmental loops of the
// level: the giver's sprite animation and the flickering bakery collider.
package scenery

import (
	"log/slog"

	"github.com/Versifine/baguette/internal/world"
)

// Cycler steps a frame index every Interval seconds, wrapping at Frames.
type Cycler struct {
	Interval float64
	Frames   int

	timer float64
	frame int
}

func NewCycler(interval float64, frames int) *Cycler {
	return &Cycler{Interval: interval, Frames: frames}
}

// Update reports whether the frame changed.
func (c *Cycler) Update(dt float64) bool {
	if c.Frames <= 1 || c.Interval <= 0 {
		return false
	}
	c.timer += dt
	if c.timer < c.Interval {
		return false
	}
	c.timer = 0
	c.frame = (c.frame + 1) % c.Frames
	return true
}

func (c *Cycler) Frame() int {
	return c.frame
}

// Blinker toggles a world box's collision every Interval seconds.
type Blinker struct {
	Interval float64

	box   *world.Box
	timer float64
}

func NewBlinker(box *world.Box, interval float64) *Blinker {
	return &Blinker{Interval: interval, box: box}
}

func (b *Blinker) Update(dt float64) {
	if b.box == nil || b.Interval <= 0 {
		return
	}
	b.timer += dt
	if b.timer < b.Interval {
		return
	}
	b.timer = 0
	b.box.Enabled = !b.box.Enabled
	slog.Debug("Collider toggled", "box", b.box.Name, "enabled", b.box.Enabled)
}

func (b *Blinker) Box() *world.Box {
	return b.box
}
