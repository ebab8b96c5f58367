package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/scene"
	"github.com/san-kum/world3d/internal/world"
)

func resolve(t *testing.T, cfg *Config) world.Options {
	t.Helper()
	opts, err := cfg.Options()
	if err != nil {
		t.Fatal(err)
	}
	o := world.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Playground != "cube" {
		t.Errorf("expected playground cube, got %s", cfg.Playground)
	}
	if cfg.Host != "tui" {
		t.Errorf("expected host tui, got %s", cfg.Host)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultConfigKeepsWorldDefaults(t *testing.T) {
	o := resolve(t, DefaultConfig())
	def := world.DefaultOptions()

	if o.Antialias != def.Antialias || o.Background != def.Background || o.Orbit != def.Orbit || o.Drag != def.Drag {
		t.Error("default config changed world defaults")
	}
	if o.CameraPosition != def.CameraPosition || o.Grid != def.Grid {
		t.Error("default config moved the camera or grid")
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world3d.yaml")
	data := []byte(`
playground: pendulum
background: "#202020"
camera:
  position: [1, 2, 3]
grid:
  enabled: true
  size: 20
  divisions: 4
drag: true
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Playground != "pendulum" {
		t.Errorf("expected pendulum, got %s", cfg.Playground)
	}
	if cfg.FrameRate != DefaultFrameRate || cfg.Window.Width != DefaultWindowWidth {
		t.Error("omitted keys lost their defaults")
	}

	o := resolve(t, cfg)
	if o.Background != scene.Color(0x202020) {
		t.Errorf("expected background #202020, got %s", o.Background)
	}
	if o.CameraPosition != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("unexpected camera %v", o.CameraPosition)
	}
	if o.CameraLookAt != (mgl32.Vec3{}) {
		t.Errorf("look-at should keep its default, got %v", o.CameraLookAt)
	}
	if o.Grid.Size != 20 || o.Grid.Divisions != 4 {
		t.Errorf("grid not used verbatim: %+v", o.Grid)
	}
	if !o.Drag || !o.Orbit {
		t.Errorf("expected drag on and orbit untouched, got drag=%v orbit=%v", o.Drag, o.Orbit)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Apply(GetPreset("lo-fi"))
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Antialias == nil || *got.Antialias {
		t.Error("antialias override lost")
	}
	if got.FrameRate != 30 {
		t.Errorf("expected frame rate 30, got %d", got.FrameRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(c *Config)
	}{
		{"host", func(c *Config) { c.Host = "web" }},
		{"frame rate", func(c *Config) { c.FrameRate = -1 }},
		{"window", func(c *Config) { c.Window.Width = 0 }},
		{"camera", func(c *Config) { c.Camera = &CameraConfig{Position: []float32{1, 2}} }},
		{"background", func(c *Config) { c.Background = "blue" }},
		{"grid color", func(c *Config) { c.Grid = &GridConfig{Enabled: true, Size: 10, Divisions: 10, LineColor: "grey"} }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mod(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
		if _, err := cfg.Options(); err == nil {
			t.Errorf("%s: Options accepted an invalid config", tt.name)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fine-grid")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Grid.Divisions != 40 {
		t.Errorf("expected 40 divisions, got %d", cfg.Grid.Divisions)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Error("presets not sorted")
		}
	}
}

func TestPresetsProduceValidOptions(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := DefaultConfig()
		cfg.Apply(GetPreset(name))
		if _, err := cfg.Options(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestUnlitAndNoGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(GetPreset("unlit"))
	cfg.Apply(GetPreset("no-grid"))
	o := resolve(t, cfg)
	if o.Lights.Mode != world.LightsCustom || len(o.Lights.Build()) != 0 {
		t.Error("expected an unlit scene")
	}
	if o.Grid.Enabled {
		t.Error("expected grid off")
	}
}

func TestDarkGridColors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(GetPreset("dark"))
	o := resolve(t, cfg)
	if o.Grid.CenterColor != scene.Color(0xAAAAAA) || o.Grid.LineColor != scene.Color(0x555555) {
		t.Errorf("grid colors not applied: %+v", o.Grid)
	}
	if o.Grid.Size != 10 || o.Grid.Divisions != 10 {
		t.Errorf("grid dimensions changed: %+v", o.Grid)
	}
}

func TestPanelStore(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PanelStore() != nil {
		t.Error("remember is off by default")
	}
	cfg.Panel.Remember = true
	cfg.DataDir = "data"
	if got := cfg.PanelStore().Path(); got != filepath.Join("data", DefaultPanelStore) {
		t.Errorf("unexpected store path %s", got)
	}
}

func TestSnapshotDirFollowsDataDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world3d.yaml")
	if err := os.WriteFile(path, []byte("data_dir: "+filepath.Join(dir, "runs")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "runs", "snapshots"); cfg.SnapshotDir() != want {
		t.Errorf("expected %s, got %s", want, cfg.SnapshotDir())
	}
	if want := filepath.Join(DefaultDataDir, "snapshots"); DefaultConfig().SnapshotDir() != want {
		t.Errorf("expected %s, got %s", want, DefaultConfig().SnapshotDir())
	}
}
