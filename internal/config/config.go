package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	StorageMemory = "memory"
	StorageFile   = "file"
)

// Config is the editor configuration document.
type Config struct {
	Log        LogConfig                 `yaml:"log"`
	Storage    StorageConfig             `yaml:"storage"`
	Scene      SceneConfig               `yaml:"scene"`
	Templates  map[string]TemplateConfig `yaml:"templates"`
	Entities   []EntityConfig            `yaml:"entities"`
	Behaviours BehavioursConfig          `yaml:"behaviours"`
	Selection  SelectionConfig           `yaml:"selection"`
	Loop       LoopConfig                `yaml:"loop"`
	Control    ControlConfig             `yaml:"control"`
	Audio      AudioConfig               `yaml:"audio"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Output is a file path, "stderr" or "stdout".
	Output string `yaml:"output"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	Key    string `yaml:"key"`
	Shards int    `yaml:"shards"`
}

type SceneConfig struct {
	Root       string     `yaml:"root"`
	Area       AreaConfig `yaml:"area"`
	ScaleRange [2]float64 `yaml:"scale_range"`
	Verbose    bool       `yaml:"verbose"`
	// Seed fixes the random source; zero seeds from entropy.
	Seed uint64 `yaml:"seed"`
}

type AreaConfig struct {
	Center models.Vector3 `yaml:"center"`
	Size   models.Vector3 `yaml:"size"`
}

func (a AreaConfig) Box() models.Box {
	return models.Box{Center: a.Center, Size: a.Size}
}

type TemplateConfig struct {
	Color      models.Color `yaml:"color"`
	Size       float64      `yaml:"size"`
	RandomTint bool         `yaml:"random_tint"`
}

type EntityConfig struct {
	Kind     models.EntityKind `yaml:"kind"`
	Template string            `yaml:"template"`
	// DefaultBehaviour is a behaviour kind, or empty / "none" for no default.
	DefaultBehaviour string `yaml:"default_behaviour"`
}

// Behaviour resolves DefaultBehaviour; ok is false when there is none.
func (e EntityConfig) Behaviour() (kind models.BehaviourKind, ok bool, err error) {
	if e.DefaultBehaviour == "" || e.DefaultBehaviour == "none" {
		return models.BehaviourUnknown, false, nil
	}
	kind, err = models.ParseBehaviourKind(e.DefaultBehaviour)
	if err != nil {
		return models.BehaviourUnknown, false, err
	}
	return kind, true, nil
}

type BehavioursConfig struct {
	Explode ExplodeConfig `yaml:"explode"`
	Points  PointsConfig  `yaml:"points"`
}

type ExplodeConfig struct {
	Scale    float64       `yaml:"scale"`
	Duration time.Duration `yaml:"duration"`
}

type PointsConfig struct {
	Amount int `yaml:"amount"`
}

type SelectionConfig struct {
	MaxDistance float64 `yaml:"max_distance"`

	// SelectLayers are hit when tapping to select; MoveLayers are hit while
	// dragging the selection.
	SelectLayers      []string      `yaml:"select_layers"`
	MoveLayers        []string      `yaml:"move_layers"`
	HighlightDuration time.Duration `yaml:"highlight_duration"`
	MoveDuration      time.Duration `yaml:"move_duration"`
}

type LoopConfig struct {
	TickRate int `yaml:"tick_rate"`
}

type ControlConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`

	// MaxClients caps concurrent control connections; zero means no limit.
	MaxClients int `yaml:"max_clients"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a complete working configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Output: "stderr"},
		Storage: StorageConfig{
			Driver: StorageMemory,
			Key:    "JSON",
			Shards: 16,
		},
		Scene: SceneConfig{
			Root:       "entities",
			Area:       AreaConfig{Center: models.Vec3(0, 0.5, 0), Size: models.Vec3(20, 0, 10)},
			ScaleRange: [2]float64{0.5, 1.0},
		},
		Templates: map[string]TemplateConfig{
			"cube":   {Color: models.Color{R: 0.25, G: 0.55, B: 0.95, A: 1}, Size: 1},
			"sphere": {Color: models.Color{R: 0.95, G: 0.35, B: 0.25, A: 1}, Size: 1, RandomTint: true},
		},
		Entities: []EntityConfig{
			{Kind: models.EntityCube, Template: "cube", DefaultBehaviour: "points"},
			{Kind: models.EntitySphere, Template: "sphere", DefaultBehaviour: "explode"},
		},
		Behaviours: BehavioursConfig{
			Explode: ExplodeConfig{Scale: 2.0, Duration: time.Second},
			Points:  PointsConfig{Amount: 100},
		},
		Selection: SelectionConfig{
			MaxDistance:       100,
			SelectLayers:      []string{"entities"},
			MoveLayers:        []string{"ground"},
			HighlightDuration: 500 * time.Millisecond,
			MoveDuration:      200 * time.Millisecond,
		},
		Loop:    LoopConfig{TickRate: 60},
		Control: ControlConfig{Enabled: false, Listen: "127.0.0.1:8089", MaxClients: 16},
		Audio:   AudioConfig{Enabled: true},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadReader(f)
}

// LoadReader decodes YAML from r over the defaults and validates the result.
func LoadReader(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first inconsistency in c.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalidConfig, err)
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: file storage needs a path", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	lo, hi := c.Scene.ScaleRange[0], c.Scene.ScaleRange[1]
	if lo <= 0 || hi < lo {
		return fmt.Errorf("%w: scale range [%g, %g]", ErrInvalidConfig, lo, hi)
	}
	if c.Scene.Area.Size.X < 0 || c.Scene.Area.Size.Y < 0 || c.Scene.Area.Size.Z < 0 {
		return fmt.Errorf("%w: negative spawn area", ErrInvalidConfig)
	}

	for i, e := range c.Entities {
		if !e.Kind.Valid() {
			return fmt.Errorf("%w: entities[%d]: unknown kind", ErrInvalidConfig, i)
		}
		if _, ok := c.Templates[e.Template]; !ok {
			return fmt.Errorf("%w: entities[%d]: unknown template %q", ErrInvalidConfig, i, e.Template)
		}
		if _, _, err := e.Behaviour(); err != nil {
			return fmt.Errorf("%w: entities[%d]: %v", ErrInvalidConfig, i, err)
		}
	}

	if c.Behaviours.Explode.Duration < 0 || c.Selection.HighlightDuration < 0 || c.Selection.MoveDuration < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	if len(c.Selection.SelectLayers) == 0 || len(c.Selection.MoveLayers) == 0 {
		return fmt.Errorf("%w: selection needs select and move layers", ErrInvalidConfig)
	}
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive", ErrInvalidConfig)
	}
	if c.Control.MaxClients < 0 {
		return fmt.Errorf("%w: max clients must not be negative", ErrInvalidConfig)
	}
	if c.Control.Enabled && c.Control.Listen == "" {
		return fmt.Errorf("%w: control surface needs a listen address", ErrInvalidConfig)
	}
	return nil
}
