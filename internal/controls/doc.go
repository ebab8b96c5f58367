// Package controls turns pointer and key input into camera and object
// motion.
//
//   - [Orbit]: rotate, pan and dolly the camera around a target
//   - [Drag]: pick objects under the pointer and move them on a
//     camera-facing plane
//
// Controls are driven by the frame loop: Handle is called for each input
// event and Orbit.Update once per frame.
package controls
