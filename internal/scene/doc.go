// Package scene holds the scene graph handed to renderers.
//
// The package defines plain data for everything a renderer draws:
//
//   - [Scene]: root container with background, objects, lights and grid
//   - [Object]: box, sphere or plane with pose, scale and color
//   - [Camera]: perspective camera backed by mgl32 matrices
//   - [Light]: ambient, directional and point lights
//   - [Grid]: ground grid helper on the XZ plane
//
// Scenes are not safe for concurrent use. They are mutated by the frame
// loop and by per-frame callbacks, one frame at a time.
package scene
