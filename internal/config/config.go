package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/glyphfield/internal/field"
	"github.com/san-kum/glyphfield/internal/noise"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS        = 60
	DefaultScrollStep = 54.0
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultTheme      = "portfolio"
	DefaultParticles  = 120
	DefaultLinkDist   = 2.5
)

var (
	ErrIntensity  = errors.New("config: intensity must be within [0, 1]")
	ErrFPS        = errors.New("config: fps must be positive")
	ErrNoise      = errors.New("config: unknown noise source")
	ErrSize       = errors.New("config: width and height must be positive")
	ErrParticles  = errors.New("config: particle count and connection distance must be positive")
	ErrScrollStep = errors.New("config: scroll step must be positive")
)

type Config struct {
	Intensity  float64         `yaml:"intensity"`
	Hero       bool            `yaml:"hero"`
	FPS        int             `yaml:"fps"`
	Alphabet   string          `yaml:"alphabet"`
	Noise      string          `yaml:"noise"`
	Seed       int64           `yaml:"seed"`
	Theme      string          `yaml:"theme"`
	ScrollStep float64         `yaml:"scroll_step"`
	FontPath   string          `yaml:"font_path"`
	LogFile    string          `yaml:"log_file"`
	Verbose    bool            `yaml:"verbose"`
	Width      int             `yaml:"width"`
	Height     int             `yaml:"height"`
	Page       PageConfig      `yaml:"page"`
	Particles  ParticlesConfig `yaml:"particles"`
}

// PageConfig is the content scrolled over the backdrop.
type PageConfig struct {
	Title    string          `yaml:"title"`
	Tagline  string          `yaml:"tagline"`
	Sections []SectionConfig `yaml:"sections"`
}

type SectionConfig struct {
	Label string `yaml:"label"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type ParticlesConfig struct {
	Count              int     `yaml:"count"`
	ConnectionDistance float64 `yaml:"connection_distance"`
	Seed               int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Intensity:  field.DefaultIntensity,
		FPS:        DefaultFPS,
		Alphabet:   field.DefaultAlphabet,
		Noise:      "hash",
		Theme:      DefaultTheme,
		ScrollStep: DefaultScrollStep,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Page:       DefaultPage(),
		Particles: ParticlesConfig{
			Count:              DefaultParticles,
			ConnectionDistance: DefaultLinkDist,
		},
	}
}

func DefaultPage() PageConfig {
	return PageConfig{
		Title:   "glyphfield",
		Tagline: "> procedural noise · terminal glyphs · pointer-reactive",
		Sections: []SectionConfig{
			{Label: "// about", Title: "What is this", Body: "A grid of monospace glyphs recomputed every frame from layered hash noise, elapsed time, scroll offset and pointer position. Nothing is cached between frames."},
			{Label: "// pointer", Title: "Move the mouse", Body: "Glyphs within the influence radius brighten towards a ceiling of 0.9 opacity. Hero mode widens the radius from 150 to 200 pixels."},
			{Label: "// scroll", Title: "Scroll the page", Body: "Outside hero mode the backdrop is dimmed to half intensity until the first viewport has scrolled past. The glyph field drifts slowly with the scroll offset."},
			{Label: "// keys", Title: "Controls", Body: "h hero · +/- intensity · t theme · n noise · s stats · ? help · q quit"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if math.IsNaN(c.Intensity) || c.Intensity < 0 || c.Intensity > 1 {
		return fmt.Errorf("%w: got %g", ErrIntensity, c.Intensity)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: got %d", ErrFPS, c.FPS)
	}
	if _, err := field.ParseAlphabet(c.Alphabet); err != nil {
		return err
	}
	if _, ok := noise.New(c.Noise, c.Seed); !ok {
		return fmt.Errorf("%w: %q (available: %v)", ErrNoise, c.Noise, noise.Names())
	}
	if !(c.ScrollStep > 0) {
		return fmt.Errorf("%w: got %g", ErrScrollStep, c.ScrollStep)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrSize, c.Width, c.Height)
	}
	if c.Particles.Count <= 0 || c.Particles.ConnectionDistance <= 0 {
		return ErrParticles
	}
	return nil
}

// NoiseSource builds the configured noise field.
func (c *Config) NoiseSource() noise.Source {
	src, ok := noise.New(c.Noise, c.Seed)
	if !ok {
		return noise.HashSource{}
	}
	return src
}

// Runes returns the alphabet, falling back to the default when empty.
func (c *Config) Runes() []rune {
	r, err := field.ParseAlphabet(c.Alphabet)
	if err != nil {
		return []rune(field.DefaultAlphabet)
	}
	return r
}
