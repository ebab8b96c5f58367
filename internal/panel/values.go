package panel

import (
	"fmt"
	"sort"
)

// Kind is the type of a tracked value.
type Kind int

const (
	Number Kind = iota
	Bool
)

func (k Kind) String() string {
	if k == Bool {
		return "bool"
	}
	return "number"
}

// Value is one named entry of a Values bag.
type Value struct {
	Name   string
	Kind   Kind
	Number float64
	Bool   bool
}

// Any returns the value as float64 or bool.
func (v Value) Any() any {
	if v.Kind == Bool {
		return v.Bool
	}
	return v.Number
}

// Values is an ordered bag of named numeric and boolean values. Per-frame
// callbacks read it; the panel writes it.
type Values struct {
	names []string
	vals  map[string]Value
}

func NewValues() *Values {
	return &Values{vals: make(map[string]Value)}
}

// ValuesFrom builds a bag from a map of float, int or bool values, in name
// order.
func ValuesFrom(m map[string]any) (*Values, error) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	v := NewValues()
	for _, name := range names {
		switch x := m[name].(type) {
		case bool:
			v.SetBool(name, x)
		case float64:
			v.SetNumber(name, x)
		case float32:
			v.SetNumber(name, float64(x))
		case int:
			v.SetNumber(name, float64(x))
		case int64:
			v.SetNumber(name, float64(x))
		default:
			return nil, fmt.Errorf("%w: %s has type %T", ErrKindMismatch, name, x)
		}
	}
	return v, nil
}

func (v *Values) put(val Value) {
	if _, ok := v.vals[val.Name]; !ok {
		v.names = append(v.names, val.Name)
	}
	v.vals[val.Name] = val
}

func (v *Values) SetNumber(name string, x float64) *Values {
	v.put(Value{Name: name, Kind: Number, Number: x})
	return v
}

func (v *Values) SetBool(name string, b bool) *Values {
	v.put(Value{Name: name, Kind: Bool, Bool: b})
	return v
}

// Get returns the named value.
func (v *Values) Get(name string) (Value, bool) {
	val, ok := v.vals[name]
	return val, ok
}

// Number returns the named number, or 0.
func (v *Values) Number(name string) float64 { return v.vals[name].Number }

// Bool returns the named bool, or false.
func (v *Values) Bool(name string) bool { return v.vals[name].Bool }

// Names returns value names in insertion order.
func (v *Values) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

func (v *Values) Len() int { return len(v.names) }

func (v *Values) Clone() *Values {
	c := NewValues()
	for _, name := range v.names {
		c.put(v.vals[name])
	}
	return c
}

// Map returns the bag as plain values.
func (v *Values) Map() map[string]any {
	m := make(map[string]any, len(v.names))
	for _, name := range v.names {
		m[name] = v.vals[name].Any()
	}
	return m
}

// Equal reports whether both bags hold the same names, kinds and values.
func (v *Values) Equal(o *Values) bool {
	if v.Len() != o.Len() {
		return false
	}
	for name, a := range v.vals {
		b, ok := o.vals[name]
		if !ok || a != b {
			return false
		}
	}
	return true
}
