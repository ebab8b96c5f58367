// Package tui hosts a World in the terminal with Bubble Tea. The World
// draws into a term.Surface; the model forwards terminal input to the
// surface and advances one frame per tick.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/world3d/internal/input"
	"github.com/san-kum/world3d/internal/render/term"
	"github.com/san-kum/world3d/internal/snapshot"
	"github.com/san-kum/world3d/internal/world"
	"go.uber.org/zap"
)

const (
	sidebarWidth   = 34
	headerRows     = 1
	footerRows     = 1
	historyLen     = 60
	defaultTickDur = 16 * time.Millisecond
)

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the Bubble Tea model around one World.
type Model struct {
	World     *world.World
	Surface   *term.Surface
	Name      string
	Snapshots *snapshot.Store // nil disables the snapshot key
	Tick      time.Duration

	logger    *zap.Logger
	history   []float64
	lastFrame time.Time
	fps       float64
	status    string
	help      bool
	err       error

	width  int
	height int
}

func New(w *world.World, s *term.Surface, name string) *Model {
	cols, rows := s.Cells()
	return &Model{
		World:   w,
		Surface: s,
		Name:    name,
		Tick:    defaultTickDur,
		logger:  w.Logger(),
		history: make([]float64, 0, historyLen),
		width:   cols + sidebarWidth,
		height:  rows + headerRows + footerRows,
	}
}

// Err returns the frame error that ended the program, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd { return tick(m.Tick) }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.Surface.Resize(max(msg.Width-sidebarWidth, 1), max(msg.Height-headerRows-footerRows, 1))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if ev, ok := m.pointer(msg); ok {
			m.Surface.Push(ev)
		}
		return m, nil
	case tickMsg:
		return m.frame(time.Time(msg))
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "?":
		m.help = !m.help
	case "p":
		m.snapshot()
	default:
		m.Surface.Push(input.KeyEvent(key))
	}
	return m, nil
}

func (m *Model) frame(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastFrame.IsZero() {
		if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
			m.fps = 1.0 / dt
			m.history = append(m.history, dt*1000)
			if len(m.history) > historyLen {
				m.history = m.history[1:]
			}
		}
	}
	m.lastFrame = now

	if err := m.World.Frame(); err != nil {
		m.err = err
		m.logger.Error("frame failed", zap.String("playground", m.Name), zap.Error(err))
		return m, tea.Quit
	}
	if m.World.Stopped() {
		return m, tea.Quit
	}
	return m, tick(m.Tick)
}

func (m *Model) snapshot() {
	if m.Snapshots == nil {
		m.status = "snapshots disabled"
		return
	}
	id, err := m.Snapshots.Save(snapshot.Capture(m.Name, m.World))
	if err != nil {
		m.status = "snapshot failed"
		m.logger.Error("snapshot", zap.Error(err))
		return
	}
	m.status = "saved " + id
	m.logger.Info("snapshot saved", zap.String("id", id))
}

// pointer maps a terminal cell to the center of its dot block.
func (m *Model) pointer(msg tea.MouseMsg) (input.Event, bool) {
	x := float32(msg.X*2 + 1)
	y := float32((msg.Y-headerRows)*4 + 2)

	var ev input.Event
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		ev = input.PointerEvent(input.Wheel, x, y, input.ButtonNone)
		ev.Wheel = 1
	case msg.Button == tea.MouseButtonWheelDown:
		ev = input.PointerEvent(input.Wheel, x, y, input.ButtonNone)
		ev.Wheel = -1
	case msg.Action == tea.MouseActionPress:
		ev = input.PointerEvent(input.PointerDown, x, y, button(msg.Button))
	case msg.Action == tea.MouseActionRelease:
		ev = input.PointerEvent(input.PointerUp, x, y, button(msg.Button))
	case msg.Action == tea.MouseActionMotion:
		ev = input.PointerEvent(input.PointerMove, x, y, button(msg.Button))
	default:
		return input.Event{}, false
	}
	ev.Shift = msg.Shift
	return ev, true
}

func button(b tea.MouseButton) input.Button {
	switch b {
	case tea.MouseButtonLeft:
		return input.ButtonLeft
	case tea.MouseButtonRight:
		return input.ButtonRight
	case tea.MouseButtonMiddle:
		return input.ButtonMiddle
	}
	return input.ButtonNone
}

// Run starts a full screen program for m and returns when it quits.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return m.err
}
