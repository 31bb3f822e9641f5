package input

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Segment holds a constant Sample for Duration seconds.
type Segment struct {
	Duration float64    `yaml:"duration"`
	Move     [2]float64 `yaml:"move"`
	Look     [2]float64 `yaml:"look"`
	Jump     bool       `yaml:"jump"`
	Sprint   bool       `yaml:"sprint"`
	Attack   bool       `yaml:"attack"`
	Interact bool       `yaml:"interact"`
}

func (s Segment) sample() Sample {
	return Sample{
		Move:     mgl64.Vec2{s.Move[0], s.Move[1]},
		Look:     mgl64.Vec2{s.Look[0], s.Look[1]},
		Jump:     s.Jump,
		Sprint:   s.Sprint,
		Attack:   s.Attack,
		Interact: s.Interact,
	}.Clamped()
}

// Script replays segments at a fixed frame time. After the last segment it
// keeps returning the zero Sample, or restarts when Loop is set.
type Script struct {
	Segments []Segment `yaml:"segments"`
	Loop     bool      `yaml:"loop"`

	dt      float64
	index   int
	elapsed float64
}

func LoadScript(path string, dt float64) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data, dt)
}

func ParseScript(data []byte, dt float64) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("input script frame time must be positive, got %v", dt)
	}
	for i, seg := range s.Segments {
		if seg.Duration < 0 {
			return nil, fmt.Errorf("input script segment %d: negative duration %v", i, seg.Duration)
		}
	}
	s.dt = dt
	return s, nil
}

// NewScript builds a script in code, mainly for tests and demos.
func NewScript(dt float64, segments ...Segment) *Script {
	return &Script{Segments: segments, dt: dt}
}

func (s *Script) Sample() Sample {
	if s == nil || len(s.Segments) == 0 {
		return Sample{}
	}
	for s.index < len(s.Segments) && s.elapsed >= s.Segments[s.index].Duration-1e-9 {
		s.elapsed = 0
		s.index++
		if s.index == len(s.Segments) && s.Loop && s.totalDuration() > 0 {
			s.index = 0
		}
	}
	if s.index >= len(s.Segments) {
		return Sample{}
	}
	out := s.Segments[s.index].sample()
	s.elapsed += s.dt
	return out
}

// Done reports whether a non-looping script has played every segment.
func (s *Script) Done() bool {
	if s == nil || len(s.Segments) == 0 {
		return true
	}
	if s.Loop {
		return false
	}
	last := len(s.Segments) - 1
	return s.index > last || (s.index == last && s.elapsed >= s.Segments[last].Duration-1e-9)
}

func (s *Script) totalDuration() float64 {
	total := 0.0
	for _, seg := range s.Segments {
		total += seg.Duration
	}
	return total
}
