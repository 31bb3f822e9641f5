package audio

import (
	"strings"
	"sync"
)

// Cue names a one-shot sound effect.
type Cue int

const (
	Scorpion Cue = iota
	Sega
	SteveDamage
	AntoineDaniel
	GameOver
	Squalala

	cueCount
)

var cueNames = [cueCount]string{
	Scorpion:      "scorpion",
	Sega:          "sega",
	SteveDamage:   "steve_damage",
	AntoineDaniel: "antoine_daniel",
	GameOver:      "game_over",
	Squalala:      "squalala",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Cues lists every cue in declaration order.
func Cues() []Cue {
	out := make([]Cue, 0, cueCount)
	for c := Cue(0); c < cueCount; c++ {
		out = append(out, c)
	}
	return out
}

func ParseCue(name string) (Cue, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range cueNames {
		if n == name {
			return Cue(c), true
		}
	}
	return 0, false
}

// Dispatcher plays cues. Implementations must not block the frame.
type Dispatcher interface {
	Play(c Cue)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue) {}

// Recorder keeps the cues it was asked to play. A nil Recorder drops them.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

func (r *Recorder) Play(c Cue) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

func (r *Recorder) Cues() []Cue {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cue, len(r.cues))
	copy(out, r.cues)
	return out
}

func (r *Recorder) Count(c Cue) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = nil
	r.mu.Unlock()
}
