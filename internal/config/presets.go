package config

import (
	"sort"

	"github.com/san-kum/glyphfield/internal/field"
)

// Presets override the intensity, mode, alphabet and noise of the defaults.
var Presets = map[string]*Config{
	"hero": {
		Intensity: 0.2, Hero: true, Alphabet: field.DefaultAlphabet, Noise: "hash",
	},
	"section": {
		Intensity: field.DefaultIntensity, Alphabet: field.DefaultAlphabet, Noise: "hash",
	},
	"subtle": {
		Intensity: 0.06, Alphabet: field.DefaultAlphabet, Noise: "hash",
	},
	"ascii": {
		Intensity: 0.15, Alphabet: field.ASCIIAlphabet, Noise: "hash",
	},
	"simplex": {
		Intensity: 0.18, Hero: true, Alphabet: field.DefaultAlphabet, Noise: "simplex", Seed: 1,
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's rendering fields onto cfg.
func (c *Config) Apply(p *Config) {
	if p == nil {
		return
	}
	c.Intensity = p.Intensity
	c.Hero = p.Hero
	if p.Alphabet != "" {
		c.Alphabet = p.Alphabet
	}
	if p.Noise != "" {
		c.Noise = p.Noise
	}
	if p.Seed != 0 {
		c.Seed = p.Seed
	}
}
