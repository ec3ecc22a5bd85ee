package mood

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML document shape of a mood catalog. Unrecognized
// fields inside mood entries are ignored for forward compatibility.
type catalogFile struct {
	Moods map[string]*Config `yaml:"moods"`
}

// Catalog is the immutable table mapping mood name to configuration.
// Lookup is pure and synchronous; entries are validated once at load time
// and never mutated afterwards.
type Catalog struct {
	moods map[string]*Config
	names []string
}

// LoadCatalog reads and parses a YAML mood catalog from disk.
//
// Parameters:
//   - path: the catalog file path
//
// Returns:
//   - *Catalog: the validated catalog
//   - error: error if the file cannot be read, parsed, or validated
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mood catalog: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parse mood catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog parses a YAML mood catalog from raw bytes and validates
// every entry. Validation failures are load-time errors: a kiosk must fail
// fast at startup rather than discover a broken mood mid-exhibition.
//
// Parameters:
//   - data: the raw YAML document
//
// Returns:
//   - *Catalog: the validated catalog
//   - error: error naming the first invalid mood and field
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Moods) == 0 {
		return nil, fmt.Errorf("catalog declares no moods")
	}

	names := make([]string, 0, len(file.Moods))
	for name, cfg := range file.Moods {
		if cfg == nil {
			return nil, fmt.Errorf("mood %q: empty entry", name)
		}
		cfg.Name = name
		if err := validateConfig(cfg); err != nil {
			return nil, fmt.Errorf("mood %q: %w", name, err)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return &Catalog{moods: file.Moods, names: names}, nil
}

// Lookup returns the configuration for the given mood name.
//
// Parameters:
//   - name: the mood name
//
// Returns:
//   - *Config: the configuration, or nil if not found
//   - bool: true if the mood exists
func (c *Catalog) Lookup(name string) (*Config, bool) {
	cfg, ok := c.moods[name]
	return cfg, ok
}

// Names returns all mood names in sorted order.
func (c *Catalog) Names() []string {
	return c.names
}

// Len returns the number of moods in the catalog.
func (c *Catalog) Len() int {
	return len(c.moods)
}

// validateConfig enforces the structural invariants a mood entry must meet.
// Animation parameter bags are deliberately NOT validated here: a malformed
// bag only skips that light's per-frame animation (self-healing on reload),
// it never blocks catalog load.
func validateConfig(cfg *Config) error {
	if cfg.Fog.Density < 0 {
		return fmt.Errorf("fog density must be >= 0, got %g", cfg.Fog.Density)
	}
	if cfg.Bloom.Threshold < 0 || cfg.Bloom.Threshold > 1 {
		return fmt.Errorf("bloom threshold must be in [0, 1], got %g", cfg.Bloom.Threshold)
	}
	if cfg.Background.Animation == BackgroundCyclingHue && cfg.Background.Speed <= 0 {
		return fmt.Errorf("cycling-hue background requires speed > 0")
	}

	for i, ps := range cfg.Particles {
		if ps.Count < 0 || ps.Count > MaxParticleCount {
			return fmt.Errorf("particles[%d]: count must be in [0, %d], got %d", i, MaxParticleCount, ps.Count)
		}
		if ps.Count > 0 {
			area := ps.Behavior.SpawnArea
			if area[0] <= 0 || area[1] <= 0 || area[2] <= 0 {
				return fmt.Errorf("particles[%d]: spawnArea extents must be positive, got %v", i, area)
			}
		}
	}

	seen := make(map[string]struct{}, len(cfg.Lights))
	for i, ls := range cfg.Lights {
		if ls.Name == "" {
			return fmt.Errorf("lights[%d]: name is required", i)
		}
		if _, dup := seen[ls.Name]; dup {
			return fmt.Errorf("lights[%d]: duplicate light name %q", i, ls.Name)
		}
		seen[ls.Name] = struct{}{}
		if min, _ := ls.Intensity.Bounds(); min < 0 {
			return fmt.Errorf("light %q: intensity must be >= 0", ls.Name)
		}
		if ls.Type == LightSpot && ls.Angle <= 0 {
			return fmt.Errorf("light %q: spot light requires angle > 0", ls.Name)
		}
	}

	return nil
}
