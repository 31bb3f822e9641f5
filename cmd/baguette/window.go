package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/Versifine/baguette/internal/game"
	"github.com/Versifine/baguette/internal/quest"
	"github.com/Versifine/baguette/internal/world"
)

const (
	screenWidth  = 960
	screenHeight = 640
	// pixels per world unit
	zoom = 12.0
)

// window is a top-down debug view of the scene: +Z points up the screen and
// the view is centered on the player.
type window struct {
	scene *game.Scene
	input *collector
	dt    float64
}

func newWindow(scene *game.Scene, fps int) *window {
	return &window{scene: scene, input: &collector{}, dt: 1 / float64(fps)}
}

func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || w.scene.Quit() {
		return ebiten.Termination
	}
	w.scene.Step(w.input.Sample(), w.dt)
	return nil
}

func (w *window) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	center := w.scene.Player().Position()

	for _, b := range w.scene.World().Boxes() {
		w.drawBox(screen, center, b)
	}

	q := w.scene.Quest()
	giverRadius := float32(0.6+0.1*float64(w.scene.GiverFrame())) * zoom
	w.dot(screen, center, q.GiverPosition(), giverRadius, colornames.Orange)
	w.dot(screen, center, q.BakerPosition(), 0.6*zoom, colornames.Wheat)
	w.dot(screen, center, w.scene.Door().Position(), 0.8*zoom, colornames.Mediumpurple)

	for _, e := range w.scene.Enemies() {
		if e.Alive() {
			w.dot(screen, center, e.Position(), 0.5*zoom, colornames.Crimson)
		}
	}

	player := w.scene.Player()
	pos := player.Position()
	yaw := mgl64.DegToRad(player.FacingYaw())
	nose := pos.Add(mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)})
	w.line(screen, center, pos, nose, colornames.White)
	w.dot(screen, center, pos, 0.5*zoom, colornames.Gold)

	cam := player.Camera().Position()
	w.line(screen, center, cam, pos, colornames.Lightskyblue)
	w.dot(screen, center, cam, 0.3*zoom, colornames.Skyblue)

	ebitenutil.DebugPrintAt(screen, w.hud(), 8, 8)
}

func (w *window) hud() string {
	player := w.scene.Player()
	st := player.State()
	q := w.scene.Quest()

	var b strings.Builder
	fmt.Fprintf(&b, "speed %.2f  grounded %v  sprint %v\n", st.PlanarSpeed(), st.Grounded, st.Sprinting)
	fmt.Fprintf(&b, "hp %.0f/%.0f  blend %.2f\n", player.Health().Current(), player.Health().Max(), player.Animator().Speed())
	fmt.Fprintf(&b, "camera yaw %.0f pitch %.0f\n", player.Camera().Yaw(), player.Camera().Pitch())
	fmt.Fprintf(&b, "quest %s  baguette %v\n", q.Step(), q.HasBaguette())
	for _, speaker := range []string{quest.Giver, quest.Baker} {
		l := q.Lines(speaker)
		if l.Dialogue != "" {
			fmt.Fprintf(&b, "%s: %s\n", speaker, strings.ReplaceAll(l.Dialogue, "\n", " "))
		}
		if l.Hint != "" {
			fmt.Fprintf(&b, "%s %s\n", speaker, l.Hint)
		}
	}
	if hint := w.scene.Door().Hint(); hint != "" {
		b.WriteString(hint + "\n")
	}
	if engine := w.scene.Engine(); engine != nil {
		if track := engine.NowPlaying(); track != "" {
			fmt.Fprintf(&b, "music %s\n", track)
		}
	}
	return b.String()
}

func (w *window) toScreen(center, p mgl64.Vec3) (float32, float32) {
	x := screenWidth/2 + (p.X()-center.X())*zoom
	y := screenHeight/2 - (p.Z()-center.Z())*zoom
	return float32(x), float32(y)
}

func (w *window) drawBox(screen *ebiten.Image, center mgl64.Vec3, b *world.Box) {
	x0, y0 := w.toScreen(center, mgl64.Vec3{b.Bounds.Min.X(), 0, b.Bounds.Max.Z()})
	x1, y1 := w.toScreen(center, mgl64.Vec3{b.Bounds.Max.X(), 0, b.Bounds.Min.Z()})
	var c color.Color = colornames.Saddlebrown
	switch {
	case !b.Enabled:
		c = color.RGBA{R: 90, G: 90, B: 90, A: 120}
	case b.Name == "ground":
		c = colornames.Darkolivegreen
	}
	vector.FillRect(screen, x0, y0, x1-x0, y1-y0, c, false)
}

func (w *window) dot(screen *ebiten.Image, center, p mgl64.Vec3, r float32, c color.Color) {
	x, y := w.toScreen(center, p)
	vector.DrawFilledCircle(screen, x, y, r, c, true)
}

func (w *window) line(screen *ebiten.Image, center, a, b mgl64.Vec3, c color.Color) {
	ax, ay := w.toScreen(center, a)
	bx, by := w.toScreen(center, b)
	vector.StrokeLine(screen, ax, ay, bx, by, 2, c, true)
}
