// Package config loads world3d settings from YAML. Scene fields are
// overrides: a nil field keeps whatever the playground or the World
// defaults choose.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/panel"
	"github.com/san-kum/world3d/internal/scene"
	"github.com/san-kum/world3d/internal/world"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPlayground   = "cube"
	DefaultHost         = "tui"
	DefaultFrameRate    = 60
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultDataDir      = ".world3d"
	DefaultPanelStore   = "panel.yaml"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Playground string `yaml:"playground"`
	Host       string `yaml:"host"`
	FrameRate  int    `yaml:"frame_rate"`
	DataDir    string `yaml:"data_dir"`

	Antialias  *bool         `yaml:"antialias,omitempty"`
	Background string        `yaml:"background,omitempty"`
	Camera     *CameraConfig `yaml:"camera,omitempty"`
	Grid       *GridConfig   `yaml:"grid,omitempty"`
	Orbit      *bool         `yaml:"orbit,omitempty"`
	Drag       *bool         `yaml:"drag,omitempty"`
	Unlit      bool          `yaml:"unlit,omitempty"`

	Window WindowConfig `yaml:"window"`
	Panel  PanelConfig  `yaml:"panel"`
	Log    LogConfig    `yaml:"log"`
}

type CameraConfig struct {
	Position []float32 `yaml:"position,omitempty"`
	LookAt   []float32 `yaml:"look_at,omitempty"`
	FOV      float32   `yaml:"fov,omitempty"`
}

type GridConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Size        float32 `yaml:"size"`
	Divisions   int     `yaml:"divisions"`
	CenterColor string  `yaml:"center_color,omitempty"`
	LineColor   string  `yaml:"line_color,omitempty"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PanelConfig controls remembering panel values between runs.
type PanelConfig struct {
	Remember bool   `yaml:"remember"`
	Store    string `yaml:"store"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Playground: DefaultPlayground,
		Host:       DefaultHost,
		FrameRate:  DefaultFrameRate,
		DataDir:    DefaultDataDir,
		Window: WindowConfig{
			Title:  "world3d",
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Panel: PanelConfig{Store: DefaultPanelStore},
		Log:   LogConfig{Level: "info", Format: "console"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Apply copies every override set in o onto c.
func (c *Config) Apply(o *Config) {
	if o == nil {
		return
	}
	if o.Playground != "" {
		c.Playground = o.Playground
	}
	if o.Host != "" {
		c.Host = o.Host
	}
	if o.FrameRate != 0 {
		c.FrameRate = o.FrameRate
	}
	if o.Antialias != nil {
		c.Antialias = o.Antialias
	}
	if o.Background != "" {
		c.Background = o.Background
	}
	if o.Camera != nil {
		cam := *o.Camera
		c.Camera = &cam
	}
	if o.Grid != nil {
		g := *o.Grid
		c.Grid = &g
	}
	if o.Orbit != nil {
		c.Orbit = o.Orbit
	}
	if o.Drag != nil {
		c.Drag = o.Drag
	}
	if o.Unlit {
		c.Unlit = true
	}
	if o.Window.Width > 0 && o.Window.Height > 0 {
		c.Window.Width, c.Window.Height = o.Window.Width, o.Window.Height
	}
}

func (c *Config) Validate() error {
	switch c.Host {
	case "tui", "window":
	default:
		return fmt.Errorf("%w: host %q (want tui or window)", ErrInvalid, c.Host)
	}
	if c.FrameRate < 0 {
		return fmt.Errorf("%w: frame_rate %d", ErrInvalid, c.FrameRate)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Camera != nil {
		if err := checkVec("camera.position", c.Camera.Position); err != nil {
			return err
		}
		if err := checkVec("camera.look_at", c.Camera.LookAt); err != nil {
			return err
		}
	}
	colors := []string{c.Background}
	if c.Grid != nil {
		colors = append(colors, c.Grid.CenterColor, c.Grid.LineColor)
	}
	for _, s := range colors {
		if s == "" {
			continue
		}
		if _, err := scene.ParseColor(s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return nil
}

func checkVec(name string, v []float32) error {
	if len(v) != 0 && len(v) != 3 {
		return fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalid, name, len(v))
	}
	return nil
}

// Options converts the overrides into world options.
func (c *Config) Options() ([]world.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []world.Option{world.WithFrameRate(c.FrameRate)}
	if c.Antialias != nil {
		opts = append(opts, world.WithAntialias(*c.Antialias))
	}
	if c.Background != "" {
		bg, _ := scene.ParseColor(c.Background)
		opts = append(opts, world.WithBackground(bg))
	}
	if cam := c.Camera; cam != nil {
		if len(cam.Position) == 3 {
			opts = append(opts, world.WithCameraPosition(mgl32.Vec3{cam.Position[0], cam.Position[1], cam.Position[2]}))
		}
		if len(cam.LookAt) == 3 {
			opts = append(opts, world.WithCameraLookAt(mgl32.Vec3{cam.LookAt[0], cam.LookAt[1], cam.LookAt[2]}))
		}
		if cam.FOV > 0 {
			opts = append(opts, world.WithFOV(cam.FOV))
		}
	}
	if g := c.Grid; g != nil {
		if g.Enabled {
			opts = append(opts, world.WithGrid(g.Size, g.Divisions))
			if g.CenterColor != "" || g.LineColor != "" {
				center, line := scene.DefaultGridCenterColor, scene.DefaultGridLineColor
				if g.CenterColor != "" {
					center, _ = scene.ParseColor(g.CenterColor)
				}
				if g.LineColor != "" {
					line, _ = scene.ParseColor(g.LineColor)
				}
				opts = append(opts, world.WithGridColors(center, line))
			}
		} else {
			opts = append(opts, world.WithoutGrid())
		}
	}
	if c.Orbit != nil {
		opts = append(opts, world.WithOrbit(*c.Orbit))
	}
	if c.Drag != nil {
		opts = append(opts, world.WithDrag(*c.Drag))
	}
	if c.Unlit {
		opts = append(opts, world.WithLights(world.CustomLights()))
	}
	return opts, nil
}

// PanelStore returns the store remembered panel values go to, or nil
// when remembering is off.
func (c *Config) PanelStore() *panel.Store {
	if !c.Panel.Remember || c.Panel.Store == "" {
		return nil
	}
	path := c.Panel.Store
	if !filepath.IsAbs(path) && c.DataDir != "" {
		path = filepath.Join(c.DataDir, path)
	}
	return panel.NewStore(path)
}

// SnapshotDir is where snapshots are stored under the data directory.
func (c *Config) SnapshotDir() string {
	return filepath.Join(c.DataDir, "snapshots")
}

func Bool(b bool) *bool { return &b }
