package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Camera     CameraConfig     `yaml:"camera"`
	Animation  AnimationConfig  `yaml:"animation"`
	Health     HealthConfig     `yaml:"health"`
	Combat     CombatConfig     `yaml:"combat"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Fall       FallConfig       `yaml:"fall"`
	Quest      QuestConfig      `yaml:"quest"`
	Door       DoorConfig       `yaml:"door"`
	Audio      AudioConfig      `yaml:"audio"`
	Scene      SceneConfig      `yaml:"scene"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type LocomotionConfig struct {
	WalkSpeed     float64 `yaml:"walk_speed"`
	SprintSpeed   float64 `yaml:"sprint_speed"`
	Acceleration  float64 `yaml:"acceleration"`
	Deceleration  float64 `yaml:"deceleration"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	Gravity       float64 `yaml:"gravity"`
	IdleDelay     float64 `yaml:"idle_delay"`
	ProbeOffset   float64 `yaml:"probe_offset"`
	ProbeDistance float64 `yaml:"probe_distance"`
	GroundClamp   bool    `yaml:"ground_clamp"`
}

type CameraConfig struct {
	Distance     float64 `yaml:"distance"`
	Height       float64 `yaml:"height"`
	RotateSpeed  float64 `yaml:"rotate_speed"`
	SmoothSpeed  float64 `yaml:"smooth_speed"`
	MinPitch     float64 `yaml:"min_pitch"`
	MaxPitch     float64 `yaml:"max_pitch"`
	InitialPitch float64 `yaml:"initial_pitch"`
}

type AnimationConfig struct {
	DampTime float64 `yaml:"damp_time"`
}

type HealthConfig struct {
	Max float64 `yaml:"max"`
}

type CombatConfig struct {
	Damage   int     `yaml:"damage"`
	Range    float64 `yaml:"range"`
	Cooldown float64 `yaml:"cooldown"`
}

type EnemyConfig struct {
	Health         int     `yaml:"health"`
	Damage         float64 `yaml:"damage"`
	MoveSpeed      float64 `yaml:"move_speed"`
	ChaseRange     float64 `yaml:"chase_range"`
	ContactRadius  float64 `yaml:"contact_radius"`
	DamageCooldown float64 `yaml:"damage_cooldown"`
}

type FallConfig struct {
	Threshold         float64 `yaml:"threshold"`
	SearchHeight      float64 `yaml:"search_height"`
	HeightAboveGround float64 `yaml:"height_above_ground"`
	FallbackHeight    float64 `yaml:"fallback_height"`
	RespawnDelay      float64 `yaml:"respawn_delay"`
}

type QuestConfig struct {
	InteractDistance float64 `yaml:"interact_distance"`
	DialogDuration   float64 `yaml:"dialog_duration"`
}

type DoorConfig struct {
	InteractDistance float64 `yaml:"interact_distance"`
	QuitDelay        float64 `yaml:"quit_delay"`
	Message          string  `yaml:"message"`
}

type AudioConfig struct {
	Enabled           bool    `yaml:"enabled"`
	SampleRate        int     `yaml:"sample_rate"`
	MusicVolume       float64 `yaml:"music_volume"`
	SFXVolume         float64 `yaml:"sfx_volume"`
	CrossfadeDuration float64 `yaml:"crossfade_duration"`
	CueDir            string  `yaml:"cue_dir"`
	MusicDir          string  `yaml:"music_dir"`
}

type SceneConfig struct {
	FPS     int           `yaml:"fps"`
	Spawn   Vec3          `yaml:"spawn"`
	Boxes   []BoxConfig   `yaml:"boxes"`
	Giver   Vec3          `yaml:"giver"`
	Baker   Vec3          `yaml:"baker"`
	Door    Vec3          `yaml:"door"`
	Enemies []Vec3        `yaml:"enemies"`
	Blinker BlinkerConfig `yaml:"blinker"`
}

type BoxConfig struct {
	Name string `yaml:"name"`
	Min  Vec3   `yaml:"min"`
	Max  Vec3   `yaml:"max"`
}

type BlinkerConfig struct {
	Box      string  `yaml:"box"`
	Interval float64 `yaml:"interval"`
}

// Vec3 is written as a three-element yaml sequence: [x, y, z].
type Vec3 [3]float64

// Default returns the shipped tuning; Load overlays a file on it.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Locomotion: LocomotionConfig{
			WalkSpeed:     4,
			SprintSpeed:   7.5,
			Acceleration:  12,
			Deceleration:  16,
			RotationSpeed: 10,
			JumpImpulse:   15,
			Gravity:       -9.81,
			IdleDelay:     0.25,
			ProbeOffset:   0.1,
			ProbeDistance: 0.2,
			GroundClamp:   true,
		},
		Camera: CameraConfig{
			Distance:     4,
			Height:       1.2,
			RotateSpeed:  90,
			SmoothSpeed:  10,
			MinPitch:     -30,
			MaxPitch:     60,
			InitialPitch: 20,
		},
		Animation: AnimationConfig{DampTime: 0.1},
		Health:    HealthConfig{Max: 100},
		Combat:    CombatConfig{Damage: 25, Range: 3, Cooldown: 0.5},
		Enemy: EnemyConfig{
			Health:         100,
			Damage:         10,
			MoveSpeed:      2,
			ChaseRange:     200,
			ContactRadius:  1,
			DamageCooldown: 1,
		},
		Fall: FallConfig{
			Threshold:         -10,
			SearchHeight:      200,
			HeightAboveGround: 2,
			FallbackHeight:    5,
			RespawnDelay:      1.5,
		},
		Quest: QuestConfig{InteractDistance: 3, DialogDuration: 4},
		Door: DoorConfig{
			InteractDistance: 3,
			QuitDelay:        1,
			Message:          "GAME OVER - you died!",
		},
		Audio: AudioConfig{
			Enabled:           false,
			SampleRate:        44100,
			MusicVolume:       0.6,
			SFXVolume:         1,
			CrossfadeDuration: 2,
		},
		Scene: SceneConfig{
			FPS:   60,
			Spawn: Vec3{0, 0, 0},
			Boxes: []BoxConfig{
				{Name: "ground", Min: Vec3{-40, -1, -40}, Max: Vec3{40, 0, 40}},
			},
			Giver: Vec3{6, 0, 6},
			Baker: Vec3{-12, 0, 18},
			Door:  Vec3{20, 0, -15},
		},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	l := c.Locomotion
	check(l.WalkSpeed > 0, "locomotion.walk_speed must be positive, got %v", l.WalkSpeed)
	check(l.SprintSpeed >= l.WalkSpeed, "locomotion.sprint_speed %v below walk_speed %v", l.SprintSpeed, l.WalkSpeed)
	check(l.Acceleration > 0, "locomotion.acceleration must be positive, got %v", l.Acceleration)
	check(l.Deceleration > 0, "locomotion.deceleration must be positive, got %v", l.Deceleration)
	check(l.RotationSpeed >= 0, "locomotion.rotation_speed must not be negative, got %v", l.RotationSpeed)
	check(l.JumpImpulse >= 0, "locomotion.jump_impulse must not be negative, got %v", l.JumpImpulse)
	check(l.Gravity <= 0, "locomotion.gravity must point down, got %v", l.Gravity)
	check(l.IdleDelay >= 0, "locomotion.idle_delay must not be negative, got %v", l.IdleDelay)
	check(l.ProbeDistance > 0, "locomotion.probe_distance must be positive, got %v", l.ProbeDistance)

	cam := c.Camera
	check(cam.Distance > 0, "camera.distance must be positive, got %v", cam.Distance)
	check(cam.MinPitch <= cam.MaxPitch, "camera.min_pitch %v above max_pitch %v", cam.MinPitch, cam.MaxPitch)
	check(cam.MinPitch > -90 && cam.MaxPitch < 90, "camera pitch range [%v, %v] must stay inside (-90, 90)", cam.MinPitch, cam.MaxPitch)
	check(cam.SmoothSpeed >= 0, "camera.smooth_speed must not be negative, got %v", cam.SmoothSpeed)

	check(c.Animation.DampTime >= 0, "animation.damp_time must not be negative, got %v", c.Animation.DampTime)
	check(c.Health.Max > 0, "health.max must be positive, got %v", c.Health.Max)
	check(c.Combat.Range > 0, "combat.range must be positive, got %v", c.Combat.Range)
	check(c.Combat.Cooldown >= 0, "combat.cooldown must not be negative, got %v", c.Combat.Cooldown)
	check(c.Enemy.DamageCooldown >= 0, "enemy.damage_cooldown must not be negative, got %v", c.Enemy.DamageCooldown)
	check(c.Fall.SearchHeight > 0, "fall.search_height must be positive, got %v", c.Fall.SearchHeight)
	check(c.Fall.RespawnDelay >= 0, "fall.respawn_delay must not be negative, got %v", c.Fall.RespawnDelay)
	check(c.Quest.InteractDistance > 0, "quest.interact_distance must be positive, got %v", c.Quest.InteractDistance)
	check(c.Door.InteractDistance > 0, "door.interact_distance must be positive, got %v", c.Door.InteractDistance)
	check(c.Audio.SampleRate > 0, "audio.sample_rate must be positive, got %v", c.Audio.SampleRate)
	check(c.Audio.CrossfadeDuration >= 0, "audio.crossfade_duration must not be negative, got %v", c.Audio.CrossfadeDuration)
	check(c.Scene.FPS > 0, "scene.fps must be positive, got %v", c.Scene.FPS)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
