// Package world composes a scene, camera, rendering surface, lights, grid,
// controls and parameter panel into a World and runs its frame loop.
//
// Construction follows a fixed order: scene, camera, renderer, lights,
// grid, orbit controls, drag controls, panel. Each step uses the option
// defaults unless overridden:
//
//	w, err := world.New(term.Open,
//		world.WithCamera(mgl32.Vec3{0, 5, 5}, mgl32.Vec3{}),
//		world.WithGrid(20, 20),
//	)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	return w.Animate(ctx, func(w *world.World) error {
//		cube.Rotation[1] += 0.01
//		return nil
//	})
//
// # Frame cycle
//
// Each Frame drains surface events (resize, keys, pointer), invokes the
// per-frame callback exactly once, updates orbit controls and draws once.
// Worlds are single threaded; call Frame, Render and Close from one
// goroutine.
package world
