package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Versifine/baguette/internal/config"
)

// Track is one decoded music file.
type Track struct {
	Name string
	buf  *beep.Buffer
}

// channel is one music voice with its own gain.
type channel struct {
	track string
	ctrl  *beep.Ctrl
	gain  *effects.Gain
	ended bool
}

func (c *channel) setLevel(v float64) {
	c.gain.Gain = v - 1
}

func (c *channel) level() float64 {
	return c.gain.Gain + 1
}

// stop detaches the voice; the mixer drops it on its next pass.
func (c *channel) stop() {
	c.ctrl.Streamer = nil
}

// Engine mixes cue one-shots and a crossfading music playlist. It is itself
// the beep.Streamer to hand to the speaker; Stream and every control method
// share one lock.
type Engine struct {
	mu    sync.Mutex
	cfg   config.AudioConfig
	rate  beep.SampleRate
	mixer *beep.Mixer
	cues  [cueCount]*beep.Buffer
	rng   *rand.Rand

	tracks  []Track
	next    int
	playing bool

	active  *channel
	fading  *channel
	fadeIn  *gween.Tween
	fadeOut *gween.Tween
}

// NewEngine prepares every cue: a <cue>.wav from CueDir when present,
// otherwise a synthesized stand-in. Music is loaded from MusicDir.
func NewEngine(cfg config.AudioConfig) (*Engine, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be positive, got %d", cfg.SampleRate)
	}
	e := &Engine{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, c := range Cues() {
		buf, err := e.loadCue(c)
		if err != nil {
			return nil, err
		}
		e.cues[c] = buf
	}
	if cfg.MusicDir != "" {
		if err := e.loadMusic(cfg.MusicDir); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) loadCue(c Cue) (*beep.Buffer, error) {
	if e.cfg.CueDir != "" {
		path := filepath.Join(e.cfg.CueDir, c.String()+".wav")
		buf, err := loadWAV(path, e.rate)
		switch {
		case err == nil:
			slog.Debug("Loaded cue", "cue", c, "path", path)
			return buf, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("audio: cue %s: %w", c, err)
		}
	}
	buf, err := synthesize(e.rate, cueRecipes[c])
	if err != nil {
		return nil, fmt.Errorf("audio: cue %s: %w", c, err)
	}
	return buf, nil
}

func (e *Engine) loadMusic(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.wav"))
	if err != nil {
		return fmt.Errorf("audio: music dir %s: %w", dir, err)
	}
	sort.Strings(paths)
	for _, path := range paths {
		buf, err := loadWAV(path, e.rate)
		if err != nil {
			return fmt.Errorf("audio: music: %w", err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		e.tracks = append(e.tracks, Track{Name: name, buf: buf})
	}
	if len(e.tracks) == 0 {
		slog.Warn("No music found", "dir", dir)
	}
	return nil
}

// AddTrack buffers s as a playlist entry.
func (e *Engine) AddTrack(name string, s beep.Streamer) {
	buf := beep.NewBuffer(bufferFormat(e.rate))
	buf.Append(s)
	e.mu.Lock()
	e.tracks = append(e.tracks, Track{Name: name, buf: buf})
	e.mu.Unlock()
}

// Play starts a one-shot cue at the sfx volume.
func (e *Engine) Play(c Cue) {
	if c < 0 || c >= cueCount {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	buf := e.cues[c]
	if buf == nil {
		return
	}
	e.mixer.Add(&effects.Gain{Streamer: buf.Streamer(0, buf.Len()), Gain: e.cfg.SFXVolume - 1})
}

// StartMusic shuffles the playlist once and fades the first track in.
func (e *Engine) StartMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.tracks) == 0 {
		slog.Warn("Music not started: empty playlist")
		return
	}
	e.rng.Shuffle(len(e.tracks), func(i, j int) {
		e.tracks[i], e.tracks[j] = e.tracks[j], e.tracks[i]
	})
	e.next = 0
	e.playing = true
	e.playNextLocked()
}

func (e *Engine) playNextLocked() {
	t := e.tracks[e.next]
	e.next = (e.next + 1) % len(e.tracks)

	ch := &channel{track: t.Name}
	body := beep.Seq(t.buf.Streamer(0, t.buf.Len()), beep.Callback(func() {
		ch.ended = true
	}))
	ch.gain = &effects.Gain{Streamer: body}
	ch.ctrl = &beep.Ctrl{Streamer: ch.gain}
	ch.setLevel(0)
	e.mixer.Add(ch.ctrl)

	if e.fading != nil {
		e.fading.stop()
	}
	e.fading = e.active
	e.active = ch
	slog.Info("Music track started", "track", t.Name)

	vol := e.cfg.MusicVolume
	dur := e.cfg.CrossfadeDuration
	if dur <= 0 {
		e.finishFadeLocked()
		return
	}
	from := 0.0
	if e.fading != nil {
		from = e.fading.level()
	}
	e.fadeIn = gween.New(0, float32(vol), float32(dur), ease.Linear)
	e.fadeOut = gween.New(float32(from), 0, float32(dur), ease.Linear)
}

func (e *Engine) finishFadeLocked() {
	e.active.setLevel(e.cfg.MusicVolume)
	if e.fading != nil {
		e.fading.stop()
		e.fading = nil
	}
	e.fadeIn, e.fadeOut = nil, nil
}

// Update advances the crossfade and queues the next track once the current
// one has ended.
func (e *Engine) Update(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.fadeIn != nil {
		in, done := e.fadeIn.Update(float32(dt))
		e.active.setLevel(float64(in))
		if e.fading != nil {
			out, _ := e.fadeOut.Update(float32(dt))
			e.fading.setLevel(float64(out))
		}
		if done {
			e.finishFadeLocked()
		}
	}
	if e.playing && e.fadeIn == nil && e.active != nil && e.active.ended {
		e.playNextLocked()
	}
}

// Stream implements beep.Streamer over the engine mix.
func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mixer.Stream(samples)
}

func (e *Engine) Err() error {
	return nil
}

// Stop silences everything and halts the playlist.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mixer.Clear()
	e.playing = false
	e.active, e.fading = nil, nil
	e.fadeIn, e.fadeOut = nil, nil
}

func (e *Engine) SampleRate() beep.SampleRate {
	return e.rate
}

// Voices is the number of streamers currently in the mix.
func (e *Engine) Voices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mixer.Len()
}

func (e *Engine) NowPlaying() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return ""
	}
	return e.active.track
}

func (e *Engine) Crossfading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fadeIn != nil
}

// MusicLevels reports the gain of the incoming and outgoing music voices.
func (e *Engine) MusicLevels() (active, fading float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		active = e.active.level()
	}
	if e.fading != nil {
		fading = e.fading.level()
	}
	return active, fading
}

func (e *Engine) Tracks() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, len(e.tracks))
	for i, t := range e.tracks {
		names[i] = t.Name
	}
	return names
}
