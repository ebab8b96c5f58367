package snapshot

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/input"
	"github.com/san-kum/world3d/internal/panel"
	"github.com/san-kum/world3d/internal/scene"
	"github.com/san-kum/world3d/internal/world"
)

type nullSurface struct{}

func (nullSurface) Size() (int, int)    { return 100, 100 }
func (nullSurface) SetSize(int, int)    {}
func (nullSurface) Poll() []input.Event { return nil }
func (nullSurface) Draw(*world.Frame)   {}
func (nullSurface) Close() error        { return nil }

func openNull(world.SurfaceConfig) (world.Surface, error) { return nullSurface{}, nil }

func newWorld(t *testing.T) (*world.World, *scene.Object) {
	t.Helper()
	values := panel.NewValues().SetNumber("speed", 0.01).SetBool("spin", true)
	w, err := world.New(openNull, world.WithPanel(world.PanelOptions{Values: values}))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { w.Close() })
	box := scene.NewBox("box", 2, 2, 2, 0x333333)
	box.Position = mgl32.Vec3{1, 2, 3}
	w.Add(box)
	return w, box
}

func TestSaveLoad(t *testing.T) {
	w, _ := newWorld(t)
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	id, err := store.Save(Capture("cube", w))
	if err != nil {
		t.Fatal(err)
	}

	snap, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Playground != "cube" {
		t.Errorf("expected playground cube, got %s", snap.Playground)
	}
	if len(snap.Objects) != 1 || snap.Objects[0].Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("unexpected objects: %+v", snap.Objects)
	}
	if snap.Objects[0].Color != "#333333" {
		t.Errorf("expected color #333333, got %s", snap.Objects[0].Color)
	}
	if snap.Camera.Position != (mgl32.Vec3{0, 5, 5}) {
		t.Errorf("unexpected camera position %v", snap.Camera.Position)
	}
	if snap.Values["speed"] != 0.01 || snap.Values["spin"] != true {
		t.Errorf("unexpected values %v", snap.Values)
	}
}

func TestApply(t *testing.T) {
	w, box := newWorld(t)
	snap := Capture("cube", w)
	snap.Camera.Position = mgl32.Vec3{0, 2, 8}
	snap.Objects[0].Position = mgl32.Vec3{-1, 0, 0}
	snap.Objects = append(snap.Objects, ObjectState{Name: "missing"})
	snap.Values["speed"] = 0.05
	snap.Values["spin"] = false

	if n := Apply(&snap, w); n != 1 {
		t.Errorf("expected 1 object restored, got %d", n)
	}
	if box.Position != (mgl32.Vec3{-1, 0, 0}) {
		t.Errorf("box not moved: %v", box.Position)
	}
	if w.Camera.Position != (mgl32.Vec3{0, 2, 8}) {
		t.Errorf("camera not moved: %v", w.Camera.Position)
	}
	if w.Panel.Values().Number("speed") != 0.05 || w.Panel.Values().Bool("spin") {
		t.Errorf("values not restored: %v", w.Panel.Values().Map())
	}
}

func TestListAndLatest(t *testing.T) {
	w, _ := newWorld(t)
	store := New(t.TempDir())
	base := time.Unix(1700000000, 0)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for _, name := range []string{"cube", "drag", "cube"} {
		if _, err := store.Save(Capture(name, w)); err != nil {
			t.Fatal(err)
		}
	}

	snaps, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snaps))
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Timestamp.Before(snaps[i-1].Timestamp) {
			t.Error("snapshots not ordered by time")
		}
	}

	latest, err := store.Latest("cube")
	if err != nil {
		t.Fatal(err)
	}
	if !latest.Timestamp.Equal(base.Add(3 * time.Second)) {
		t.Errorf("expected newest cube snapshot, got %v", latest.Timestamp)
	}

	if _, err := store.Latest("pendulum"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListMissingDir(t *testing.T) {
	store := New(t.TempDir() + "/nope")
	snaps, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 0 {
		t.Errorf("expected no snapshots, got %d", len(snaps))
	}
	if _, err := store.Load("x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
