package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration of the studio.
type Config struct {
	Studio StudioConfig `json:"studio" yaml:"studio"`
	Demo   DemoConfig   `json:"demo" yaml:"demo"`
	Player PlayerConfig `json:"player" yaml:"player"`
	Events EventsConfig `json:"events" yaml:"events"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// StudioConfig holds the web studio server settings.
type StudioConfig struct {
	Host        string `json:"host" yaml:"host"`
	Port        int    `json:"port" yaml:"port"`
	MediaDir    string `json:"media_dir" yaml:"media_dir"`       // clip library root
	DownloadDir string `json:"download_dir" yaml:"download_dir"` // terminal downloads land here
}

// StepConfig is one scripted prompt and its clip.
type StepConfig struct {
	Text  string `json:"text" yaml:"text"`
	Media string `json:"media" yaml:"media"`
}

// DemoConfig overrides the scripted demo. Empty steps keep the built-in
// sequence.
type DemoConfig struct {
	Steps            []StepConfig `json:"steps,omitempty" yaml:"steps,omitempty"`
	StartDelay       Duration     `json:"start_delay" yaml:"start_delay"`
	StartingPause    Duration     `json:"starting_pause" yaml:"starting_pause"`
	WrapPause        Duration     `json:"wrap_pause" yaml:"wrap_pause"`
	RestartPause     Duration     `json:"restart_pause" yaml:"restart_pause"`
	ResumeDelay      Duration     `json:"resume_delay" yaml:"resume_delay"`
	TypingMin        Duration     `json:"typing_min" yaml:"typing_min"`
	TypingMax        Duration     `json:"typing_max" yaml:"typing_max"`
	GenerateFallback string       `json:"generate_fallback" yaml:"generate_fallback"`
	ExecuteFallback  string       `json:"execute_fallback" yaml:"execute_fallback"`
}

// PlayerConfig configures simulated playback in the terminal studio.
type PlayerConfig struct {
	ClipLength Duration `json:"clip_length" yaml:"clip_length"`
}

// EventsConfig holds event bus settings.
type EventsConfig struct {
	BufferSize int `json:"buffer_size" yaml:"buffer_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
	File  string `json:"file" yaml:"file"`   // terminal studio log file
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate reports the first inconsistency in cfg.
func (c *Config) Validate() error {
	if c.Studio.Port < 0 || c.Studio.Port > 65535 {
		return fmt.Errorf("%w: studio.port %d out of range", ErrInvalidConfig, c.Studio.Port)
	}
	for i, s := range c.Demo.Steps {
		if s.Text == "" {
			return fmt.Errorf("%w: demo.steps[%d] has no text", ErrInvalidConfig, i)
		}
		if s.Media == "" {
			return fmt.Errorf("%w: demo.steps[%d] has no media", ErrInvalidConfig, i)
		}
	}
	if c.Demo.TypingMin < 0 || c.Demo.TypingMax < c.Demo.TypingMin {
		return fmt.Errorf("%w: typing delay range [%s, %s)", ErrInvalidConfig,
			c.Demo.TypingMin.Duration(), c.Demo.TypingMax.Duration())
	}
	if c.Events.BufferSize < 1 {
		return fmt.Errorf("%w: events.buffer_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Duration wraps time.Duration for "1.5s" style values.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(dur)
	return nil
}
