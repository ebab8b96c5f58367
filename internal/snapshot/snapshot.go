// Package snapshot saves the camera pose, objects and panel values of a
// World to disk.
package snapshot

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/scene"
	"github.com/san-kum/world3d/internal/world"
)

var ErrNotFound = errors.New("snapshot: not found")

type CameraState struct {
	Position mgl32.Vec3 `json:"position"`
	Target   mgl32.Vec3 `json:"target"`
	FOV      float32    `json:"fov"`
}

type ObjectState struct {
	Name     string     `json:"name"`
	Shape    string     `json:"shape"`
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Vec3 `json:"rotation"`
	Scale    mgl32.Vec3 `json:"scale"`
	Color    string     `json:"color"`
	Hidden   bool       `json:"hidden,omitempty"`
}

type Snapshot struct {
	ID         string         `json:"id"`
	Playground string         `json:"playground"`
	Timestamp  time.Time      `json:"timestamp"`
	Frame      uint64         `json:"frame"`
	Camera     CameraState    `json:"camera"`
	Objects    []ObjectState  `json:"objects"`
	Values     map[string]any `json:"values,omitempty"`
}

// Capture records the current state of w.
func Capture(playground string, w *world.World) Snapshot {
	s := Snapshot{
		Playground: playground,
		Frame:      w.FrameCount,
		Camera: CameraState{
			Position: w.Camera.Position,
			Target:   w.Camera.Target,
			FOV:      w.Camera.FOV,
		},
	}
	for _, o := range w.Scene.Objects {
		s.Objects = append(s.Objects, ObjectState{
			Name:     o.Name,
			Shape:    o.Shape.String(),
			Position: o.Position,
			Rotation: o.Rotation,
			Scale:    o.Scale,
			Color:    o.Color.Hex(),
			Hidden:   o.Hidden,
		})
	}
	if w.Panel != nil {
		s.Values = w.Panel.Values().Map()
	}
	return s
}

// Apply restores the camera and the transforms of objects found by name.
// Panel values are restored for names the panel already tracks. It
// returns the number of objects restored.
func Apply(s *Snapshot, w *world.World) int {
	w.Camera.Position = s.Camera.Position
	w.Camera.LookAt(s.Camera.Target)
	if s.Camera.FOV > 0 {
		w.Camera.FOV = s.Camera.FOV
		w.Camera.UpdateProjection()
	}
	if w.Orbit != nil {
		w.Orbit.Target = s.Camera.Target
	}

	n := 0
	for _, st := range s.Objects {
		o := w.Scene.Find(st.Name)
		if o == nil {
			continue
		}
		o.Position, o.Rotation, o.Scale, o.Hidden = st.Position, st.Rotation, st.Scale, st.Hidden
		if c, err := scene.ParseColor(st.Color); err == nil {
			o.Color = c
		}
		n++
	}

	if w.Panel != nil {
		for name, v := range s.Values {
			switch x := v.(type) {
			case float64:
				_ = w.Panel.Set(name, x)
			case bool:
				if cur, ok := w.Panel.Values().Get(name); ok && cur.Bool != x {
					_ = w.Panel.Toggle(name)
				}
			}
		}
	}
	return n
}

// Store keeps one directory per snapshot under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Save writes snap and returns its id.
func (s *Store) Save(snap Snapshot) (string, error) {
	now := s.now()
	snap.Timestamp = now
	snap.ID = fmt.Sprintf("%s_%d", snap.Playground, now.UnixNano())
	dir := filepath.Join(s.baseDir, snap.ID)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return "", err
	}

	if err := writeObjects(filepath.Join(dir, "objects.csv"), snap.Objects); err != nil {
		return "", err
	}
	return snap.ID, nil
}

func writeObjects(path string, objs []ObjectState) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "shape", "x", "y", "z", "rx", "ry", "rz", "color"}); err != nil {
		return err
	}
	for _, o := range objs {
		row := []string{o.Name, o.Shape}
		for _, v := range []float32{o.Position[0], o.Position[1], o.Position[2], o.Rotation[0], o.Rotation[1], o.Rotation[2]} {
			row = append(row, strconv.FormatFloat(float64(v), 'f', 6, 32))
		}
		row = append(row, o.Color)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, err
	}

	snaps := make([]Snapshot, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		snap, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *snap)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.Before(snaps[j].Timestamp) })
	return snaps, nil
}

func (s *Store) Load(id string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Latest returns the newest snapshot of playground, or ErrNotFound.
func (s *Store) Latest(playground string) (*Snapshot, error) {
	snaps, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := len(snaps) - 1; i >= 0; i-- {
		if snaps[i].Playground == playground {
			return &snaps[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, playground)
}
