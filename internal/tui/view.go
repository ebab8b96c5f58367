package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	sidebar = lipgloss.NewStyle().
		Width(sidebarWidth - 2).
		PaddingLeft(1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color("238"))
)

func (m *Model) View() string {
	header := cyan.Render("world3d") + dim.Render(" :: ") + white.Render(m.Name)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.Surface.View(), sidebar.Render(m.sidebar()))
	footer := dimmer.Render("drag/arrows orbit  wheel/+- zoom  tab/[ ] panel  h hide  p snapshot  ? help  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) sidebar() string {
	var b strings.Builder
	w := m.World

	if p := w.Panel; p != nil && p.Visible {
		b.WriteString(cyan.Render(p.Title) + "\n")
		for _, r := range p.Rows() {
			line := fmt.Sprintf("  %-10s %8s", r.Label, r.Value)
			if r.Selected {
				line = yellow.Render("> " + line[2:])
			} else {
				line = dim.Render(line)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	cam := w.Camera
	b.WriteString(cyan.Render("camera") + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("  pos  %6.2f %6.2f %6.2f", cam.Position.X(), cam.Position.Y(), cam.Position.Z())) + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("  dist %6.2f  fov %.0f", cam.Distance(), cam.FOV)) + "\n\n")

	b.WriteString(dim.Render(fmt.Sprintf("frame %d", w.FrameCount)) + "  " + green.Render(fmt.Sprintf("%.0f fps", m.fps)) + "\n")
	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(sidebarWidth - 12),
			asciigraph.Caption("frame ms"))
		b.WriteString(dim.Render(chart) + "\n")
	}

	if d := w.Drag; d != nil {
		if o := d.Active(); o != nil {
			b.WriteString(yellow.Render("dragging "+o.Name) + "\n")
		} else if o := d.Hovered(); o != nil {
			b.WriteString(dim.Render("over "+o.Name) + "\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + white.Render(m.status) + "\n")
	}
	if m.help {
		b.WriteString("\n" + dim.Render(helpText))
	}
	return b.String()
}

const helpText = `left drag    rotate
right drag   pan
shift drag   pan
wheel / + -  zoom
arrows       rotate
tab          next control
[ ] { }      adjust
space        toggle
h            hide panel
p            snapshot`
