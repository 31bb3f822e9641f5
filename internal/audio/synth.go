package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is the beep resampler quality used for clips recorded at
// a different rate than the engine.
const resampleQuality = 4

type note struct {
	freq float64
	dur  time.Duration
}

// Stand-in jingles used when no recording is provided for a cue.
var cueRecipes = [cueCount][]note{
	Scorpion:      {{196, 120 * time.Millisecond}, {147, 220 * time.Millisecond}},
	Sega:          {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 200 * time.Millisecond}},
	SteveDamage:   {{110, 180 * time.Millisecond}},
	AntoineDaniel: {{330, 100 * time.Millisecond}, {440, 100 * time.Millisecond}},
	GameOver:      {{392, 200 * time.Millisecond}, {330, 200 * time.Millisecond}, {262, 400 * time.Millisecond}},
	Squalala:      {{660, 80 * time.Millisecond}, {880, 80 * time.Millisecond}, {660, 80 * time.Millisecond}, {990, 140 * time.Millisecond}},
}

func bufferFormat(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

// synthesize renders notes back to back at a third of full scale.
func synthesize(rate beep.SampleRate, notes []note) (*beep.Buffer, error) {
	buf := beep.NewBuffer(bufferFormat(rate))
	for _, n := range notes {
		sine, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("synthesize %v Hz: %w", n.freq, err)
		}
		buf.Append(&effects.Gain{Streamer: beep.Take(rate.N(n.dur), sine), Gain: -2.0 / 3})
	}
	return buf, nil
}

// loadWAV decodes a whole file into memory at the engine rate.
func loadWAV(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != rate {
		src = beep.Resample(resampleQuality, format.SampleRate, rate, s)
	}
	buf := beep.NewBuffer(bufferFormat(rate))
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}
