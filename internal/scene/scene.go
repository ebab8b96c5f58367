package scene

// Scene is the root container of everything drawn in a frame.
type Scene struct {
	Background Color
	Objects    []*Object
	Lights     []Light
	Grid       *Grid
}

func New(background Color) *Scene {
	return &Scene{Background: background}
}

// Add appends objects in draw order.
func (s *Scene) Add(objs ...*Object) {
	for _, o := range objs {
		if o != nil {
			s.Objects = append(s.Objects, o)
		}
	}
}

// Remove detaches o and reports whether it was present.
func (s *Scene) Remove(o *Object) bool {
	for i, cur := range s.Objects {
		if cur == o {
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the first object with the given name, or nil.
func (s *Scene) Find(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func (s *Scene) AddLight(lights ...Light) {
	s.Lights = append(s.Lights, lights...)
}

// Visible returns the objects that are not hidden.
func (s *Scene) Visible() []*Object {
	out := make([]*Object, 0, len(s.Objects))
	for _, o := range s.Objects {
		if !o.Hidden {
			out = append(out, o)
		}
	}
	return out
}
