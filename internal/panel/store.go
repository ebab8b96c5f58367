package panel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Store persists value bags as named presets in one YAML file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) read() (map[string]map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	presets := map[string]map[string]any{}
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("panel: parse %s: %w", s.path, err)
	}
	return presets, nil
}

// Load returns the values saved under preset.
func (s *Store) Load(preset string) (*Values, error) {
	presets, err := s.read()
	if err != nil {
		return nil, err
	}
	m, ok := presets[preset]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPreset, preset)
	}
	return ValuesFrom(m)
}

// Save replaces preset with v, keeping other presets in the file.
func (s *Store) Save(preset string, v *Values) error {
	presets, err := s.read()
	if err != nil {
		return err
	}
	presets[preset] = v.Map()
	data, err := yaml.Marshal(presets)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0644)
}

// Presets returns the saved preset names in order.
func (s *Store) Presets() ([]string, error) {
	presets, err := s.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
