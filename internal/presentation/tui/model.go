// Package tui renders a board in the terminal and drives its drake with the
// mouse.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/drake"
	"github.com/aretw0/drake/pkg/board"
	"github.com/aretw0/drake/pkg/dom"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/mirror"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// historySize is how many recent events the status area keeps.
const historySize = 4

var defaultStyles = map[paint]lipgloss.Style{
	paintBorder:  lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")),
	paintTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e2e8f0")).Bold(true),
	paintItem:    lipgloss.NewStyle().Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color("#a5b4fc")),
	paintLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("#e2e8f0")).Background(lipgloss.Color("#475569")),
	paintTransit: lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")).Background(lipgloss.Color("#1e293b")).Faint(true),
	paintMirror:  lipgloss.NewStyle().Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color("#fcd34d")).Bold(true),
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
)

// Model is the bubbletea model of an interactive board.
type Model struct {
	board  *board.Board
	drake  *drake.Drake
	styles map[paint]lipgloss.Style

	history []string
	err     error
}

// NewModel creates a model over b driven by d, which must operate on b's
// document.
func NewModel(b *board.Board, d *drake.Drake) *Model {
	m := &Model{board: b, drake: d, styles: defaultStyles}
	for _, t := range domain.EventTypes {
		d.On(t, m.record)
	}
	return m
}

func (m *Model) record(e domain.Event) error {
	line := string(e.Type)
	if e.Item != nil {
		line += " " + m.board.Label(e.Item.ID)
	}
	if e.Container != nil {
		line += " → " + m.board.Label(e.Container.ID)
	}
	if e.Outcome != "" {
		line += " (" + string(e.Outcome) + ")"
	}
	m.history = append(m.history, line)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.err = m.drake.Destroy()
			return m, tea.Quit
		case key.Matches(msg, keys.Cancel):
			m.err = m.drake.CancelWithRevert(true)
		}
	case tea.MouseMsg:
		m.err = m.pointer(msg)
	}
	return m, nil
}

// pointer maps a terminal mouse sample to the drake. Cells are addressed by
// their center.
func (m *Model) pointer(msg tea.MouseMsg) error {
	ev := domain.PointerEvent{
		Point: dom.Point{X: float64(msg.X) + 0.5, Y: float64(msg.Y) + 0.5},
		Ctrl:  msg.Ctrl,
		Meta:  msg.Alt,
	}
	if msg.Button == tea.MouseButtonLeft {
		ev.Button = domain.ButtonLeft
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.drake.PointerDown(ev)
	case tea.MouseActionMotion:
		return m.drake.PointerMove(ev)
	case tea.MouseActionRelease:
		return m.drake.PointerUp(ev)
	}
	return nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.paint())
	b.WriteByte('\n')

	status := fmt.Sprintf("%s · %s", m.board.Name, m.drake.Phase())
	if s, ok := m.drake.Session(); ok {
		status += " · " + m.board.Label(s.Item.ID)
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteByte('\n')
	for _, line := range m.history {
		b.WriteString("  " + line + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render(keys.helpLine()))
	return b.String()
}

func (m *Model) paint() string {
	size := m.drake.Document().Viewport()
	c := newCanvas(int(size.W), int(size.H), m.styles)
	for _, n := range m.drake.Document().Body().Children() {
		m.paintNode(c, n)
	}
	return c.render()
}

func (m *Model) paintNode(c *canvas, n *dom.Node) {
	r := n.Rect()
	x, y, w, h := bounds(r)
	label, _ := n.Attr(board.LabelAttr)

	switch {
	case n.HasClass(board.ClassContainer):
		c.box(r, paintBorder)
		if label != "" {
			c.text(x+2, y, w-4, " "+label+" ", paintTitle)
		}
	default:
		p := paintItem
		switch {
		case n.HasClass(mirror.ClassName):
			p = paintMirror
		case n.HasClass(drake.TransitClass):
			p = paintTransit
		case n.HasClass(board.ClassLocked):
			p = paintLocked
		}
		c.fill(r, p)
		if label == "" {
			label = n.ID
		}
		c.text(x+1, y+(h-1)/2, w-2, label, p)
	}
	for _, child := range n.Children() {
		m.paintNode(c, child)
	}
}

// Run shows b in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, b *board.Board, d *drake.Drake) error {
	p := tea.NewProgram(NewModel(b, d),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
