// Package input defines host-neutral input events delivered by rendering
// surfaces to the frame loop.
package input

// Kind identifies the event type.
type Kind int

const (
	Resize Kind = iota
	PointerDown
	PointerMove
	PointerUp
	Wheel
	Key
	Close
)

func (k Kind) String() string {
	switch k {
	case Resize:
		return "resize"
	case PointerDown:
		return "pointer-down"
	case PointerMove:
		return "pointer-move"
	case PointerUp:
		return "pointer-up"
	case Wheel:
		return "wheel"
	case Key:
		return "key"
	case Close:
		return "close"
	}
	return "unknown"
}

// Button is a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Event is a single input event. Coordinates are surface pixels with the
// origin at the top-left corner. Keys use the names Bubble Tea reports,
// e.g. "tab", "shift+tab", "left", "space", "+".
type Event struct {
	Kind   Kind
	Width  int
	Height int
	X, Y   float32
	DX, DY float32
	Button Button
	Wheel  float32
	Key    string
	Shift  bool
}

func ResizeEvent(width, height int) Event {
	return Event{Kind: Resize, Width: width, Height: height}
}

func KeyEvent(key string) Event {
	return Event{Kind: Key, Key: key}
}

func PointerEvent(kind Kind, x, y float32, button Button) Event {
	return Event{Kind: kind, X: x, Y: y, Button: button}
}
