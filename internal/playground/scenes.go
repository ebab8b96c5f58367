package playground

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/motion"
	"github.com/san-kum/world3d/internal/panel"
	"github.com/san-kum/world3d/internal/scene"
	"github.com/san-kum/world3d/internal/world"
)

// Cube spins a black box above the grid.
func Cube() *Playground {
	return &Playground{
		Name:        "cube",
		Description: "a black box spinning about y",
		Setup: func(w *world.World) (world.FrameFunc, error) {
			box := scene.NewBox("Nice black box", 2, 2, 2, 0x333333)
			box.Position[1] = 1
			w.Add(box)
			return func(*world.World) error {
				box.Rotation[1] += 0.01
				return nil
			}, nil
		},
	}
}

// Drag lays out boxes that can be moved with the pointer.
func Drag() *Playground {
	return &Playground{
		Name:        "drag",
		Description: "boxes to drag around",
		Options: func() []world.Option {
			return []world.Option{world.WithDrag(true), world.WithOrbit(false)}
		},
		Setup: func(w *world.World) (world.FrameFunc, error) {
			colors := []scene.Color{0xCC3333, 0x33CC33, 0x3333CC}
			for i, c := range colors {
				box := scene.NewBox("box"+string(rune('A'+i)), 1, 1, 1, c)
				box.Position = mgl32.Vec3{float32(i-1) * 2, 0.5, 0}
				w.AddDraggable(box)
			}
			return nil, nil
		},
	}
}

// Lights circles a point light around a sphere and a floor plane.
func Lights() *Playground {
	lamp := scene.NewPointLight(0xFFEECC, 1.5, 20)
	lamp.Name = "lamp"
	return &Playground{
		Name:        "lights",
		Description: "a point light orbiting a sphere",
		Options: func() []world.Option {
			return []world.Option{
				world.WithLights(world.LightFactory(func() []scene.Light {
					return []scene.Light{scene.NewAmbientLight(scene.White, 0.25), lamp}
				})),
				world.WithCamera(mgl32.Vec3{0, 6, 8}, mgl32.Vec3{0, 1, 0}),
			}
		},
		Setup: func(w *world.World) (world.FrameFunc, error) {
			ball := scene.NewSphere("ball", 1, 0xDDDDDD)
			ball.Position[1] = 1
			floor := scene.NewPlane("floor", 8, 8, 0xAAAAAA)
			marker := scene.NewSphere("lamp marker", 0.15, 0xFFEECC)
			w.Add(ball, floor, marker)

			angle := 0.0
			return func(w *world.World) error {
				angle += 0.02
				lamp.Position = mgl32.Vec3{
					float32(4 * math.Cos(angle)),
					3,
					float32(4 * math.Sin(angle)),
				}
				marker.Position = lamp.Position
				return nil
			}, nil
		},
	}
}

// Tweak spins a box with speed and size taken from the panel.
func Tweak() *Playground {
	values := panel.NewValues().
		SetNumber("speed", 0.01).
		SetNumber("size", 2).
		SetBool("spin", true)
	return &Playground{
		Name:        "tweak",
		Description: "panel driven spin",
		Options: func() []world.Option {
			return []world.Option{world.WithPanel(world.PanelOptions{
				Values: values,
				Setup: func(p *panel.Panel, _ *panel.Values) error {
					if _, err := p.Add("speed", 0, 0.1, 0.005); err != nil {
						return err
					}
					if _, err := p.Add("size", 0.5, 4, 0.1); err != nil {
						return err
					}
					_, err := p.AddBool("spin")
					return err
				},
			})}
		},
		Setup: func(w *world.World) (world.FrameFunc, error) {
			box := scene.NewBox("box", 1, 1, 1, 0x336699)
			w.Add(box)
			return func(w *world.World) error {
				v := w.Panel.Values()
				size := float32(v.Number("size"))
				box.Scale = mgl32.Vec3{size, size, size}
				box.Position[1] = size / 2
				if v.Bool("spin") {
					box.Rotation[1] += float32(v.Number("speed"))
				}
				return nil
			}, nil
		},
	}
}

// Pendulum swings a bob from a pivot with RK4 integration. Length,
// damping and gravity are panel values.
func Pendulum() *Playground {
	values := panel.NewValues().
		SetNumber("length", 3).
		SetNumber("damping", 0.1).
		SetNumber("gravity", 9.81)
	return &Playground{
		Name:        "pendulum",
		Description: "an RK4 integrated pendulum",
		Options: func() []world.Option {
			return []world.Option{
				world.WithCamera(mgl32.Vec3{0, 4, 9}, mgl32.Vec3{0, 3, 0}),
				world.WithPanel(world.PanelOptions{
					Values: values,
					Setup: func(p *panel.Panel, _ *panel.Values) error {
						for _, c := range []struct {
							name           string
							min, max, step float64
						}{
							{"length", 0.5, 5, 0.1},
							{"damping", 0, 2, 0.05},
							{"gravity", 0, 30, 0.5},
						} {
							if _, err := p.Add(c.name, c.min, c.max, c.step); err != nil {
								return err
							}
						}
						return nil
					},
				}),
			}
		},
		Setup: func(w *world.World) (world.FrameFunc, error) {
			pivot := mgl32.Vec3{0, 6, 0}
			hook := scene.NewBox("pivot", 0.3, 0.3, 0.3, 0x444444)
			hook.Position = pivot
			rod := scene.NewBox("rod", 0.05, 1, 0.05, 0x666666)
			bob := scene.NewSphere("bob", 0.4, 0xAA2222)
			w.Add(hook, rod, bob)

			p := motion.NewPendulum()
			apply := func() {
				v := w.Panel.Values()
				_ = p.SetParam("length", v.Number("length"))
				_ = p.SetParam("damping", v.Number("damping"))
				_ = p.SetParam("gravity", v.Number("gravity"))
			}
			apply()
			w.Panel.OnChange(func(panel.Value) { apply() })

			st := motion.NewStepper(p, motion.State{1.0, 0}, 0.005)
			place := func() {
				bx, by := p.Bob(st.State)
				bob.Position = pivot.Add(mgl32.Vec3{float32(bx), float32(by), 0})
				rod.Position = pivot.Add(bob.Position).Mul(0.5)
				rod.Size[1] = float32(p.Length)
				rod.Rotation[2] = float32(st.State[0])
			}
			place()

			return func(w *world.World) error {
				dt := w.Delta
				if dt <= 0 || dt > 50*time.Millisecond {
					dt = time.Second / 60
				}
				st.Advance(dt.Seconds())
				if !st.State.IsValid() {
					st.State = motion.State{0, 0}
				}
				place()
				return nil
			}, nil
		},
	}
}

// Spring bobs a box on an RK4 integrated spring hanging from an anchor.
func Spring() *Playground {
	values := panel.NewValues().
		SetNumber("stiffness", 10).
		SetNumber("damping", 0.5).
		SetNumber("mass", 1)
	return &Playground{
		Name:        "spring",
		Description: "a box bobbing on an RK4 integrated spring",
		Options: func() []world.Option {
			return []world.Option{
				world.WithCamera(mgl32.Vec3{0, 4, 9}, mgl32.Vec3{0, 3, 0}),
				world.WithPanel(world.PanelOptions{
					Values: values,
					Setup: func(p *panel.Panel, _ *panel.Values) error {
						for _, c := range []struct {
							name           string
							min, max, step float64
						}{
							{"stiffness", 1, 50, 1},
							{"damping", 0, 5, 0.1},
							{"mass", 0.1, 5, 0.1},
						} {
							if _, err := p.Add(c.name, c.min, c.max, c.step); err != nil {
								return err
							}
						}
						return nil
					},
				}),
			}
		},
		Setup: func(w *world.World) (world.FrameFunc, error) {
			anchor := mgl32.Vec3{0, 6, 0}
			rest := mgl32.Vec3{0, 3, 0}
			mount := scene.NewBox("anchor", 1, 0.2, 1, 0x444444)
			mount.Position = anchor
			coil := scene.NewBox("coil", 0.1, 1, 0.1, 0x666666)
			weight := scene.NewBox("weight", 1, 1, 1, 0x2255AA)
			w.Add(mount, coil, weight)

			sp := motion.NewSpring()
			apply := func() {
				v := w.Panel.Values()
				_ = sp.SetParam("stiffness", v.Number("stiffness"))
				_ = sp.SetParam("damping", v.Number("damping"))
				_ = sp.SetParam("mass", v.Number("mass"))
			}
			apply()
			w.Panel.OnChange(func(panel.Value) { apply() })

			st := motion.NewStepper(sp, motion.State{1.5, 0}, 0.005)
			place := func() {
				weight.Position = rest.Sub(mgl32.Vec3{0, float32(st.State[0]), 0})
				coil.Position = anchor.Add(weight.Position).Mul(0.5)
				coil.Size[1] = anchor.Y() - weight.Position.Y()
			}
			place()

			return func(w *world.World) error {
				dt := w.Delta
				if dt <= 0 || dt > 50*time.Millisecond {
					dt = time.Second / 60
				}
				st.Advance(dt.Seconds())
				if !st.State.IsValid() {
					st.State = motion.State{0, 0}
				}
				place()
				return nil
			}, nil
		},
	}
}
