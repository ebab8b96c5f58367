// Package panel implements the live parameter panel: a bag of named values
// with range controls that can be tweaked from the keyboard while the
// frame loop runs.
package panel

import (
	"errors"
	"fmt"
	"math"
)

// Control binds a value in the bag to an editable range.
type Control struct {
	Name string
	Kind Kind
	Min  float64
	Max  float64
	Step float64
}

// Row is one line of the panel as renderers draw it.
type Row struct {
	Label    string
	Value    string
	Fraction float64 // position inside [Min, Max] for number controls
	Kind     Kind
	Selected bool
}

// Panel tracks exactly the Values it was created with.
type Panel struct {
	Title   string
	Visible bool

	values    *Values
	controls  []*Control
	selected  int
	listeners []func(Value)

	store  *Store
	preset string
}

func New(values *Values) *Panel {
	if values == nil {
		values = NewValues()
	}
	return &Panel{Title: "controls", Visible: true, values: values}
}

// Values returns the tracked bag.
func (p *Panel) Values() *Values { return p.values }

// Add creates a number control for an existing value. A zero step uses a
// hundredth of the range.
func (p *Panel) Add(name string, min, max, step float64) (*Control, error) {
	val, ok := p.values.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownValue, name)
	}
	if val.Kind != Number {
		return nil, fmt.Errorf("%w: %s is %s", ErrKindMismatch, name, val.Kind)
	}
	if min >= max || step < 0 {
		return nil, fmt.Errorf("%w: %s [%g, %g] step %g", ErrInvalidRange, name, min, max, step)
	}
	if step == 0 {
		step = (max - min) / 100
	}
	c := &Control{Name: name, Kind: Number, Min: min, Max: max, Step: step}
	p.controls = append(p.controls, c)
	return c, nil
}

// AddBool creates a checkbox control for an existing bool value.
func (p *Panel) AddBool(name string) (*Control, error) {
	val, ok := p.values.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownValue, name)
	}
	if val.Kind != Bool {
		return nil, fmt.Errorf("%w: %s is %s", ErrKindMismatch, name, val.Kind)
	}
	c := &Control{Name: name, Kind: Bool}
	p.controls = append(p.controls, c)
	return c, nil
}

func (p *Panel) Controls() []*Control { return p.controls }

// Selected returns the focused control, or nil when there are none.
func (p *Panel) Selected() *Control {
	if len(p.controls) == 0 {
		return nil
	}
	return p.controls[p.selected]
}

// OnChange registers fn to run after every value change.
func (p *Panel) OnChange(fn func(Value)) {
	p.listeners = append(p.listeners, fn)
}

func (p *Panel) control(name string) *Control {
	for _, c := range p.controls {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Set assigns a number, clamped to the control range when one exists.
func (p *Panel) Set(name string, x float64) error {
	val, ok := p.values.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownValue, name)
	}
	if val.Kind != Number {
		return fmt.Errorf("%w: %s is %s", ErrKindMismatch, name, val.Kind)
	}
	if c := p.control(name); c != nil {
		x = math.Max(c.Min, math.Min(c.Max, x))
	}
	p.values.SetNumber(name, x)
	p.notify(name)
	return nil
}

// Toggle flips a bool value.
func (p *Panel) Toggle(name string) error {
	val, ok := p.values.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownValue, name)
	}
	if val.Kind != Bool {
		return fmt.Errorf("%w: %s is %s", ErrKindMismatch, name, val.Kind)
	}
	p.values.SetBool(name, !val.Bool)
	p.notify(name)
	return nil
}

func (p *Panel) notify(name string) {
	val, _ := p.values.Get(name)
	for _, fn := range p.listeners {
		fn(val)
	}
}

// HandleKey applies panel key bindings and reports whether key was used.
//
//	tab / shift+tab  select next / previous control
//	] / [            step the selected number up / down
//	} / {            step ten times up / down
//	space            toggle the selected bool
//	h                show / hide the panel
func (p *Panel) HandleKey(key string) bool {
	if key == "h" {
		p.Visible = !p.Visible
		return true
	}
	c := p.Selected()
	if c == nil || !p.Visible {
		return false
	}
	switch key {
	case "tab":
		p.selected = (p.selected + 1) % len(p.controls)
	case "shift+tab":
		p.selected--
		if p.selected < 0 {
			p.selected = len(p.controls) - 1
		}
	case "]", "[", "}", "{":
		if c.Kind != Number {
			return false
		}
		step := c.Step
		if key == "}" || key == "{" {
			step *= 10
		}
		if key == "[" || key == "{" {
			step = -step
		}
		_ = p.Set(c.Name, p.values.Number(c.Name)+step)
	case " ", "space":
		if c.Kind != Bool {
			return false
		}
		_ = p.Toggle(c.Name)
	default:
		return false
	}
	return true
}

// Rows returns one row per control in creation order.
func (p *Panel) Rows() []Row {
	rows := make([]Row, 0, len(p.controls))
	for i, c := range p.controls {
		val, _ := p.values.Get(c.Name)
		row := Row{Label: c.Name, Kind: c.Kind, Selected: i == p.selected}
		if c.Kind == Bool {
			row.Value = "off"
			if val.Bool {
				row.Value = "on"
				row.Fraction = 1
			}
		} else {
			row.Value = fmt.Sprintf("%.3g", val.Number)
			row.Fraction = (val.Number - c.Min) / (c.Max - c.Min)
		}
		rows = append(rows, row)
	}
	return rows
}

// Remember loads values saved under preset into the bag, for names the
// bag already tracks, and saves the bag there on Save.
func (p *Panel) Remember(store *Store, preset string) error {
	p.store, p.preset = store, preset
	saved, err := store.Load(preset)
	if err != nil {
		if errors.Is(err, ErrNoPreset) {
			return nil
		}
		return err
	}
	for _, name := range saved.Names() {
		cur, ok := p.values.Get(name)
		s, _ := saved.Get(name)
		if !ok || cur.Kind != s.Kind {
			continue
		}
		p.values.put(s)
	}
	return nil
}

// Save writes the bag to the remembered preset. It is a no-op when
// Remember was not called.
func (p *Panel) Save() error {
	if p.store == nil {
		return nil
	}
	return p.store.Save(p.preset, p.values)
}
