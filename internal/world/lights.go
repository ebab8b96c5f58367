package world

import "github.com/san-kum/world3d/internal/scene"

// LightMode selects how a LightSet produces lights.
type LightMode int

const (
	// LightsDefault adds one white ambient light at intensity 1.
	LightsDefault LightMode = iota
	// LightsCustom adds a fixed list, which may be empty.
	LightsCustom
	// LightsFactory calls a function at construction time.
	LightsFactory
)

func (m LightMode) String() string {
	switch m {
	case LightsDefault:
		return "default"
	case LightsCustom:
		return "custom"
	case LightsFactory:
		return "factory"
	}
	return "unknown"
}

// LightSet is the tagged light configuration of a World.
type LightSet struct {
	Mode    LightMode
	List    []scene.Light
	Factory func() []scene.Light
}

func DefaultLights() LightSet {
	return LightSet{Mode: LightsDefault}
}

// CustomLights uses exactly the given lights. With no arguments the scene
// is unlit.
func CustomLights(lights ...scene.Light) LightSet {
	return LightSet{Mode: LightsCustom, List: lights}
}

// LightFactory builds the lights when the World is constructed.
func LightFactory(fn func() []scene.Light) LightSet {
	return LightSet{Mode: LightsFactory, Factory: fn}
}

// Build returns the lights for this set.
func (ls LightSet) Build() []scene.Light {
	switch ls.Mode {
	case LightsCustom:
		out := make([]scene.Light, len(ls.List))
		copy(out, ls.List)
		return out
	case LightsFactory:
		if ls.Factory == nil {
			return nil
		}
		return ls.Factory()
	}
	return []scene.Light{scene.NewAmbientLight(scene.White, 1)}
}
