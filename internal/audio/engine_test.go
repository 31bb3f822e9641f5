package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"github.com/Versifine/baguette/internal/config"
)

const testRate = 8000

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func testAudioConfig() config.AudioConfig {
	cfg := config.Default().Audio
	cfg.SampleRate = testRate
	return cfg
}

func tone(t *testing.T, freq float64, d time.Duration) beep.Streamer {
	t.Helper()
	sine, err := generators.SineTone(beep.SampleRate(testRate), freq)
	if err != nil {
		t.Fatalf("SineTone: %v", err)
	}
	return beep.Take(beep.SampleRate(testRate).N(d), sine)
}

// drain pulls samples through the engine the way the speaker would.
func drain(e *Engine, n int) {
	buf := make([][2]float64, 512)
	for n > 0 {
		chunk := len(buf)
		if n < chunk {
			chunk = n
		}
		e.Stream(buf[:chunk])
		n -= chunk
	}
}

func TestCueNames(t *testing.T) {
	for _, c := range Cues() {
		got, ok := ParseCue(c.String())
		if !ok || got != c {
			t.Errorf("ParseCue(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if len(Cues()) != 6 {
		t.Fatalf("len(Cues()) = %d, want 6", len(Cues()))
	}
	if Cue(42).String() != "unknown" {
		t.Errorf("out of range cue = %q", Cue(42).String())
	}
	if _, ok := ParseCue("kazoo"); ok {
		t.Error("ParseCue accepted an unknown name")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(Squalala)
	r.Play(GameOver)
	r.Play(Squalala)
	if got := r.Count(Squalala); got != 2 {
		t.Fatalf("Count(Squalala) = %d, want 2", got)
	}
	if got := r.Cues(); len(got) != 3 || got[1] != GameOver {
		t.Fatalf("Cues() = %v", got)
	}
	r.Reset()
	if len(r.Cues()) != 0 {
		t.Fatal("Reset did not clear cues")
	}
	var _ Dispatcher = Nop{}
	var _ Dispatcher = &r
}

func TestEnginePlaysSynthesizedCues(t *testing.T) {
	e, err := NewEngine(testAudioConfig())
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	for _, c := range Cues() {
		e.Play(c)
	}
	if got := e.Voices(); got != len(Cues()) {
		t.Fatalf("Voices = %d, want %d", got, len(Cues()))
	}

	buf := make([][2]float64, 256)
	n, ok := e.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}

	drain(e, testRate)
	if got := e.Voices(); got != 0 {
		t.Fatalf("Voices = %d after one second, want every cue finished", got)
	}
}

func TestEngineSFXVolumeScalesCue(t *testing.T) {
	cfg := testAudioConfig()
	cfg.SFXVolume = 0
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	e.Play(Sega)
	buf := make([][2]float64, 256)
	e.Stream(buf)
	for i, s := range buf {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d = %v, want silence at zero volume", i, s)
		}
	}
}

func TestEngineRejectsBadSampleRate(t *testing.T) {
	cfg := testAudioConfig()
	cfg.SampleRate = 0
	if _, err := NewEngine(cfg); err == nil {
		t.Fatal("NewEngine accepted a zero sample rate")
	}
}

func writeWAV(t *testing.T, path string, s beep.Streamer) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := wav.Encode(f, s, bufferFormat(beep.SampleRate(testRate))); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestEngineLoadsFilesFromDisk(t *testing.T) {
	cueDir := t.TempDir()
	musicDir := t.TempDir()
	writeWAV(t, filepath.Join(cueDir, "squalala.wav"), tone(t, 440, 50*time.Millisecond))
	writeWAV(t, filepath.Join(musicDir, "b_theme.wav"), tone(t, 220, 100*time.Millisecond))
	writeWAV(t, filepath.Join(musicDir, "a_theme.wav"), tone(t, 330, 100*time.Millisecond))

	cfg := testAudioConfig()
	cfg.CueDir = cueDir
	cfg.MusicDir = musicDir
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}

	if got := e.cues[Squalala].Len(); got != beep.SampleRate(testRate).N(50*time.Millisecond) {
		t.Fatalf("squalala cue has %d samples, want the recorded clip", got)
	}
	tracks := e.Tracks()
	if len(tracks) != 2 || tracks[0] != "a_theme" || tracks[1] != "b_theme" {
		t.Fatalf("Tracks() = %v, want [a_theme b_theme]", tracks)
	}
}

func TestEngineReportsCorruptCue(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sega.wav"), []byte("not a wav"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := testAudioConfig()
	cfg.CueDir = dir
	if _, err := NewEngine(cfg); err == nil {
		t.Fatal("NewEngine accepted a corrupt cue file")
	}
}

func TestMusicCrossfade(t *testing.T) {
	cfg := testAudioConfig()
	cfg.MusicVolume = 0.6
	cfg.CrossfadeDuration = 2
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	e.AddTrack("one", tone(t, 220, 100*time.Millisecond))
	e.AddTrack("two", tone(t, 330, 100*time.Millisecond))

	e.StartMusic()
	first := e.NowPlaying()
	if first == "" || !e.Crossfading() {
		t.Fatalf("NowPlaying=%q Crossfading=%v after StartMusic", first, e.Crossfading())
	}

	e.Update(1)
	if active, fading := e.MusicLevels(); !approxEqual(active, 0.3, 1e-6) || fading != 0 {
		t.Fatalf("levels half way = %v/%v, want 0.3/0", active, fading)
	}
	e.Update(1)
	if active, _ := e.MusicLevels(); !approxEqual(active, 0.6, 1e-9) || e.Crossfading() {
		t.Fatalf("after fade in: level=%v crossfading=%v", active, e.Crossfading())
	}

	drain(e, testRate)
	e.Update(0.01)
	second := e.NowPlaying()
	if second == first || second == "" {
		t.Fatalf("NowPlaying = %q after %q ended, want the other track", second, first)
	}
	if !e.Crossfading() {
		t.Fatal("next track should crossfade in")
	}

	e.Update(2)
	active, fading := e.MusicLevels()
	if !approxEqual(active, 0.6, 1e-9) || fading != 0 || e.Crossfading() {
		t.Fatalf("after crossfade: active=%v fading=%v crossfading=%v", active, fading, e.Crossfading())
	}
}

func TestMusicWithoutCrossfadeStartsAtFullVolume(t *testing.T) {
	cfg := testAudioConfig()
	cfg.CrossfadeDuration = 0
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	e.AddTrack("only", tone(t, 220, 100*time.Millisecond))
	e.StartMusic()
	if active, _ := e.MusicLevels(); !approxEqual(active, cfg.MusicVolume, 1e-9) || e.Crossfading() {
		t.Fatalf("level=%v crossfading=%v", active, e.Crossfading())
	}
}

func TestStartMusicWithEmptyPlaylist(t *testing.T) {
	e, err := NewEngine(testAudioConfig())
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	e.StartMusic()
	e.Update(1)
	if e.NowPlaying() != "" {
		t.Fatalf("NowPlaying = %q with no tracks", e.NowPlaying())
	}
}

func TestStopClearsMix(t *testing.T) {
	e, err := NewEngine(testAudioConfig())
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	e.AddTrack("one", tone(t, 220, time.Second))
	e.StartMusic()
	e.Play(GameOver)
	e.Stop()
	if e.Voices() != 0 || e.NowPlaying() != "" {
		t.Fatalf("Voices=%d NowPlaying=%q after Stop", e.Voices(), e.NowPlaying())
	}
}
