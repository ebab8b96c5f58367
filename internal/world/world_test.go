package world_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/world3d/internal/input"
	"github.com/san-kum/world3d/internal/panel"
	"github.com/san-kum/world3d/internal/scene"
	"github.com/san-kum/world3d/internal/world"
)

var _ = Describe("World", func() {
	var surface *fakeSurface

	BeforeEach(func() {
		surface = newFakeSurface(800, 600)
	})

	newWorld := func(opts ...world.Option) *world.World {
		w, err := world.New(surface.opener(), append([]world.Option{world.WithFrameRate(0)}, opts...)...)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(w.Close)
		return w
	}

	Describe("defaults", func() {
		It("applies every default when no option is given", func() {
			w := newWorld()

			Expect(surface.cfg.Antialias).To(BeTrue())
			Expect(surface.cfg.Background).To(Equal(scene.Color(0xECECEC)))
			Expect(w.Scene.Background).To(Equal(scene.Color(0xECECEC)))

			Expect(w.Camera.Position).To(Equal(mgl32.Vec3{0, 5, 5}))
			Expect(w.Camera.Target).To(Equal(mgl32.Vec3{0, 0, 0}))
			Expect(w.Camera.FOV).To(BeNumerically("==", 75))
			Expect(w.Camera.Near).To(BeNumerically("~", 0.1, 1e-6))
			Expect(w.Camera.Far).To(BeNumerically("==", 1000))
			Expect(w.Camera.Aspect).To(BeNumerically("~", 800.0/600.0, 1e-6))

			Expect(w.Lights).To(HaveLen(1))
			amb, ok := w.Lights[0].(*scene.AmbientLight)
			Expect(ok).To(BeTrue())
			Expect(amb.Color).To(Equal(scene.White))
			Expect(amb.Intensity).To(BeNumerically("==", 1))
			Expect(w.Scene.Lights).To(Equal(w.Lights))

			Expect(w.Grid).NotTo(BeNil())
			Expect(w.Grid.Size).To(BeNumerically("==", 10))
			Expect(w.Grid.Divisions).To(Equal(10))
			Expect(w.Scene.Grid).To(BeIdenticalTo(w.Grid))

			Expect(w.Orbit).NotTo(BeNil())
			Expect(w.Drag).To(BeNil())
			Expect(w.Panel).To(BeNil())
		})

		It("does not resize the surface while constructing", func() {
			newWorld()
			Expect(surface.sizes).To(BeEmpty())
		})
	})

	Describe("options", func() {
		It("overrides only the setting it names", func() {
			w := newWorld(world.WithAntialias(false))
			def := world.DefaultOptions()

			Expect(surface.cfg.Antialias).To(BeFalse())
			Expect(w.Options.Background).To(Equal(def.Background))
			Expect(w.Options.CameraPosition).To(Equal(def.CameraPosition))
			Expect(w.Options.CameraLookAt).To(Equal(def.CameraLookAt))
			Expect(w.Options.Grid).To(Equal(def.Grid))
			Expect(w.Options.Orbit).To(Equal(def.Orbit))
			Expect(w.Options.Drag).To(Equal(def.Drag))
			Expect(w.Options.Lights.Mode).To(Equal(world.LightsDefault))
			Expect(w.Options.Panel).To(BeNil())
		})

		It("moves the camera without touching the rest", func() {
			w := newWorld(world.WithCameraPosition(mgl32.Vec3{3, 4, 5}))
			Expect(w.Camera.Position).To(Equal(mgl32.Vec3{3, 4, 5}))
			Expect(w.Camera.Target).To(Equal(mgl32.Vec3{}))
			Expect(w.Grid).NotTo(BeNil())
		})

		It("uses explicit grid dimensions verbatim", func() {
			w := newWorld(world.WithGrid(20, 4))
			Expect(w.Grid.Size).To(BeNumerically("==", 20))
			Expect(w.Grid.Divisions).To(Equal(4))
			Expect(w.Grid.Lines()).To(HaveLen(10))
		})

		It("colors the grid without resetting its dimensions", func() {
			w := newWorld(world.WithGrid(20, 4), world.WithGridColors(0xFF0000, 0x00FF00))
			Expect(w.Grid.Size).To(BeNumerically("==", 20))
			Expect(w.Grid.Divisions).To(Equal(4))
			Expect(w.Grid.CenterColor).To(Equal(scene.Color(0xFF0000)))
			Expect(w.Grid.LineColor).To(Equal(scene.Color(0x00FF00)))

			d := newWorld()
			Expect(d.Grid.CenterColor).To(Equal(scene.DefaultGridCenterColor))
			Expect(d.Grid.LineColor).To(Equal(scene.DefaultGridLineColor))
		})

		It("leaves the grid out when disabled", func() {
			w := newWorld(world.WithoutGrid())
			Expect(w.Grid).To(BeNil())
			Expect(w.Scene.Grid).To(BeNil())
		})

		It("skips orbit controls when disabled", func() {
			w := newWorld(world.WithOrbit(false))
			Expect(w.Orbit).To(BeNil())
		})
	})

	Describe("lights", func() {
		It("supports an unlit scene", func() {
			w := newWorld(world.WithLights(world.CustomLights()))
			Expect(w.Lights).To(BeEmpty())
			Expect(w.Scene.Lights).To(BeEmpty())
		})

		It("uses a custom list as given", func() {
			sun := scene.NewDirectionalLight(scene.White, 0.5)
			w := newWorld(world.WithLights(world.CustomLights(sun)))
			Expect(w.Lights).To(HaveLen(1))
			Expect(w.Lights[0]).To(BeIdenticalTo(sun))
		})

		It("calls a factory once", func() {
			calls := 0
			w := newWorld(world.WithLights(world.LightFactory(func() []scene.Light {
				calls++
				return []scene.Light{
					scene.NewAmbientLight(scene.White, 0.2),
					scene.NewPointLight(scene.White, 1, 0),
				}
			})))
			Expect(calls).To(Equal(1))
			Expect(w.Lights).To(HaveLen(2))
		})
	})

	Describe("construction errors", func() {
		It("requires an opener", func() {
			_, err := world.New(nil)
			Expect(err).To(MatchError(world.ErrNoOpener))
		})

		It("wraps opener failures", func() {
			_, err := world.New(brokenOpener)
			Expect(errors.Is(err, errBrokenOpener)).To(BeTrue())
		})

		It("rejects bad grids", func() {
			_, err := world.New(surface.opener(), world.WithGrid(0, 10))
			Expect(err).To(MatchError(world.ErrInvalidGrid))
			_, err = world.New(surface.opener(), world.WithGrid(10, -1))
			Expect(err).To(MatchError(world.ErrInvalidGrid))
		})

		It("rejects a camera on its target", func() {
			p := mgl32.Vec3{1, 1, 1}
			_, err := world.New(surface.opener(), world.WithCamera(p, p))
			Expect(err).To(MatchError(world.ErrInvalidCamera))
			_, err = world.New(surface.opener(), world.WithFOV(0))
			Expect(err).To(MatchError(world.ErrInvalidCamera))
		})

		It("closes the surface when panel setup fails", func() {
			boom := errors.New("boom")
			_, err := world.New(surface.opener(), world.WithPanel(world.PanelOptions{
				Setup: func(*panel.Panel, *panel.Values) error { return boom },
			}))
			Expect(errors.Is(err, boom)).To(BeTrue())
			Expect(surface.closed).To(Equal(1))
		})
	})

	Describe("panel", func() {
		It("tracks exactly the supplied bag", func() {
			values := panel.NewValues().SetNumber("speed", 0.01).SetBool("spin", true)
			var seen *panel.Values
			w := newWorld(world.WithPanel(world.PanelOptions{
				Values: values,
				Setup: func(p *panel.Panel, v *panel.Values) error {
					seen = v
					_, err := p.Add("speed", 0, 0.1, 0.01)
					return err
				},
			}))

			Expect(w.Panel).NotTo(BeNil())
			Expect(w.Panel.Values()).To(BeIdenticalTo(values))
			Expect(seen).To(BeIdenticalTo(values))
			Expect(w.Panel.Values().Names()).To(Equal([]string{"speed", "spin"}))
		})

		It("gives an empty bag when none is supplied", func() {
			w := newWorld(world.WithPanel(world.PanelOptions{}))
			Expect(w.Panel.Values().Len()).To(BeZero())
		})

		It("consumes its keys before orbit controls", func() {
			values := panel.NewValues().SetNumber("speed", 0.05)
			w := newWorld(world.WithPanel(world.PanelOptions{
				Values: values,
				Setup: func(p *panel.Panel, _ *panel.Values) error {
					_, err := p.Add("speed", 0, 0.1, 0.01)
					return err
				},
			}))
			surface.push(input.KeyEvent("]"))
			Expect(w.Frame()).To(Succeed())
			Expect(values.Number("speed")).To(BeNumerically("~", 0.06, 1e-9))
		})

		It("remembers values across worlds", func() {
			dir, err := os.MkdirTemp("", "world-panel")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
			store := panel.NewStore(filepath.Join(dir, "panel.yaml"))

			first, err := world.New(surface.opener(), world.WithPanel(world.PanelOptions{
				Values: panel.NewValues().SetNumber("speed", 0.01),
				Store:  store,
				Preset: "cube",
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Panel.Set("speed", 0.07)).To(Succeed())
			Expect(first.Close()).To(Succeed())

			second := newWorld(world.WithPanel(world.PanelOptions{
				Values: panel.NewValues().SetNumber("speed", 0.01),
				Store:  store,
				Preset: "cube",
			}))
			Expect(second.Panel.Values().Number("speed")).To(BeNumerically("~", 0.07, 1e-9))
		})
	})

	Describe("resize", func() {
		It("runs on every resize event and nothing else", func() {
			w := newWorld()
			surface.push(
				input.KeyEvent("x"),
				input.ResizeEvent(200, 100),
				input.PointerEvent(input.PointerMove, 10, 10, input.ButtonNone),
			)
			Expect(w.Frame()).To(Succeed())
			Expect(surface.sizes).To(Equal([][2]int{{200, 100}}))
			Expect(w.Camera.Aspect).To(BeNumerically("~", 2, 1e-6))

			Expect(w.Frame()).To(Succeed())
			Expect(surface.sizes).To(HaveLen(1))

			surface.push(input.ResizeEvent(300, 300), input.ResizeEvent(400, 100))
			Expect(w.Frame()).To(Succeed())
			Expect(surface.sizes).To(Equal([][2]int{{200, 100}, {300, 300}, {400, 100}}))
			Expect(w.Camera.Aspect).To(BeNumerically("~", 4, 1e-6))
		})

		It("recomputes the projection", func() {
			w := newWorld()
			before := w.Camera.Projection()
			surface.push(input.ResizeEvent(1000, 250))
			Expect(w.Frame()).To(Succeed())
			Expect(w.Camera.Projection()).NotTo(Equal(before))
		})
	})

	Describe("frame loop", func() {
		It("calls the callback once per frame between poll and draw", func() {
			w := newWorld()
			var got []*world.World
			w.OnFrame(func(cur *world.World) error {
				got = append(got, cur)
				surface.calls = append(surface.calls, "callback")
				return nil
			})

			for range 3 {
				Expect(w.Frame()).To(Succeed())
			}
			Expect(got).To(HaveLen(3))
			for _, cur := range got {
				Expect(cur).To(BeIdenticalTo(w))
			}
			Expect(surface.calls).To(Equal([]string{
				"poll", "callback", "draw",
				"poll", "callback", "draw",
				"poll", "callback", "draw",
			}))
			Expect(w.FrameCount).To(Equal(uint64(3)))
		})

		It("replaces the previous callback", func() {
			w := newWorld()
			var a, b int
			w.OnFrame(func(*world.World) error { a++; return nil })
			w.OnFrame(func(*world.World) error { b++; return nil })
			Expect(w.Frame()).To(Succeed())
			Expect([]int{a, b}).To(Equal([]int{0, 1}))
		})

		It("lets the callback rotate an object", func() {
			w := newWorld()
			box := scene.NewBox("Nice black box", 2, 2, 2, 0x333333)
			w.Add(box)
			w.OnFrame(func(*world.World) error {
				box.Rotation[1] += 0.01
				return nil
			})
			for range 10 {
				Expect(w.Frame()).To(Succeed())
			}
			Expect(box.Rotation.Y()).To(BeNumerically("~", 0.1, 1e-5))
			Expect(surface.frames[len(surface.frames)-1].Scene.Find("Nice black box")).To(BeIdenticalTo(box))
		})

		It("stops on a callback error", func() {
			w := newWorld()
			boom := errors.New("boom")
			err := w.Animate(context.Background(), func(w *world.World) error {
				if w.FrameCount == 2 {
					return boom
				}
				return nil
			})
			var fe *world.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(uint64(2)))
			Expect(errors.Is(err, boom)).To(BeTrue())
			Expect(surface.frames).To(HaveLen(1))
		})

		It("returns when the surface closes", func() {
			w := newWorld()
			err := w.Animate(context.Background(), func(w *world.World) error {
				if w.FrameCount == 3 {
					surface.push(input.Event{Kind: input.Close})
				}
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(w.FrameCount).To(Equal(uint64(3)))
			Expect(w.Stopped()).To(BeTrue())
		})

		It("honors context cancellation", func() {
			w := newWorld()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			calls := 0
			err := w.Animate(ctx, func(*world.World) error { calls++; return nil })
			Expect(err).To(MatchError(context.Canceled))
			Expect(calls).To(BeZero())
		})

		It("renders on demand without the callback", func() {
			w := newWorld()
			calls := 0
			w.OnFrame(func(*world.World) error { calls++; return nil })
			var after *world.World
			Expect(w.Render(func(cur *world.World) { after = cur })).To(Succeed())
			Expect(after).To(BeIdenticalTo(w))
			Expect(calls).To(BeZero())
			Expect(surface.frames).To(HaveLen(1))
		})

		It("measures frame deltas with the clock", func() {
			now := time.Unix(0, 0)
			w := newWorld(world.WithClock(func() time.Time { return now }))
			Expect(w.Frame()).To(Succeed())
			now = now.Add(16 * time.Millisecond)
			Expect(w.Frame()).To(Succeed())
			Expect(w.Delta).To(Equal(16 * time.Millisecond))
			Expect(surface.frames[1].Delta).To(Equal(16 * time.Millisecond))
		})
	})

	Describe("keys", func() {
		It("orbits the camera with arrow keys", func() {
			w := newWorld()
			surface.push(input.KeyEvent("left"))
			Expect(w.Frame()).To(Succeed())
			Expect(w.Camera.Position.X()).NotTo(BeNumerically("~", 0, 1e-3))
			Expect(w.Camera.Distance()).To(BeNumerically("~", mgl32.Vec3{0, 5, 5}.Len(), 1e-3))
		})

		It("lets the key hook claim keys", func() {
			w := newWorld()
			var keys []string
			w.OnKey(func(key string) bool {
				keys = append(keys, key)
				return true
			})
			surface.push(input.KeyEvent("left"))
			Expect(w.Frame()).To(Succeed())
			Expect(keys).To(Equal([]string{"left"}))
			Expect(w.Camera.Position.X()).To(BeNumerically("~", 0, 1e-4))
		})
	})

	Describe("drag", func() {
		It("pauses orbit while an object is dragged", func() {
			w := newWorld(world.WithDrag(true), world.WithCamera(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))
			box := scene.NewBox("box", 2, 2, 2, scene.White)
			w.AddDraggable(box)
			Expect(w.Drag.Objects).To(ConsistOf(box))
			Expect(w.Scene.Objects).To(ConsistOf(box))

			surface.width, surface.height = 100, 100
			surface.push(input.PointerEvent(input.PointerDown, 50, 50, input.ButtonLeft))
			Expect(w.Frame()).To(Succeed())
			Expect(w.Drag.Active()).To(BeIdenticalTo(box))
			Expect(w.Orbit.Enabled).To(BeFalse())
			Expect(surface.frames[0].Dragged).To(BeIdenticalTo(box))

			surface.push(
				input.PointerEvent(input.PointerMove, 75, 50, input.ButtonLeft),
				input.PointerEvent(input.PointerUp, 75, 50, input.ButtonLeft),
			)
			Expect(w.Frame()).To(Succeed())
			Expect(w.Drag.Active()).To(BeNil())
			Expect(w.Orbit.Enabled).To(BeTrue())
			Expect(box.Position.X()).To(BeNumerically(">", 0))
			Expect(w.Camera.Position.X()).To(BeNumerically("~", 0, 1e-4))
			Expect(w.Camera.Position.Z()).To(BeNumerically("~", 10, 1e-4))
		})

		It("picks objects appended to Draggable directly", func() {
			w := newWorld(world.WithDrag(true), world.WithOrbit(false), world.WithCamera(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))
			box := scene.NewBox("box", 2, 2, 2, scene.White)
			w.Add(box)
			w.Draggable = append(w.Draggable, box)

			surface.width, surface.height = 100, 100
			surface.push(input.PointerEvent(input.PointerDown, 50, 50, input.ButtonLeft))
			Expect(w.Frame()).To(Succeed())
			Expect(w.Drag.Active()).To(BeIdenticalTo(box))
			Expect(w.Drag.Objects).To(ConsistOf(box))
		})
	})

	Describe("Close", func() {
		It("closes the surface once and refuses further frames", func() {
			w, err := world.New(surface.opener())
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Close()).To(Succeed())
			Expect(w.Close()).To(Succeed())
			Expect(surface.closed).To(Equal(1))
			Expect(w.Closed()).To(BeTrue())
			Expect(w.Frame()).To(MatchError(world.ErrClosed))
			Expect(w.Render(nil)).To(MatchError(world.ErrClosed))
			Expect(w.Run(context.Background())).To(MatchError(world.ErrClosed))
		})

		It("leaves other worlds running", func() {
			other := newFakeSurface(640, 480)
			a := newWorld()
			b, err := world.New(other.opener(), world.WithFrameRate(0))
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(b.Close)

			Expect(a.Close()).To(Succeed())
			Expect(b.Frame()).To(Succeed())
			Expect(other.frames).To(HaveLen(1))
			Expect(surface.closed).To(Equal(1))
			Expect(other.closed).To(BeZero())
		})
	})
})
