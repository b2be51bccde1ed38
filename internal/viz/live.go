package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/dmolina-v/efield/internal/compute"
	"github.com/dmolina-v/efield/internal/field"
	"github.com/dmolina-v/efield/internal/particle"
	"github.com/dmolina-v/efield/internal/vec"
)

const (
	canvasWidth     = 72
	canvasHeight    = 28
	trailCapacity   = 200
	historyCapacity = 400
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives one particle through the field, one integration step
// per frame, and renders the cross section plus running stats.
type Model struct {
	stepper *particle.Stepper
	ev      *field.Evaluator
	cfg     particle.StepConfig

	initial particle.State
	state   particle.State
	t       float64
	steps   int
	status  particle.Status
	running bool

	canvas  *Canvas
	trail   []vec.Vec3
	history []float64
}

// NewModel builds the live view around an evaluator and launch state.
func NewModel(ev *field.Evaluator, initial particle.State, cfg particle.StepConfig) Model {
	return Model{
		stepper: particle.NewStepper(ev),
		ev:      ev,
		cfg:     cfg,
		initial: initial,
		state:   initial,
		status:  particle.Moving,
		running: true,
		canvas:  NewCanvas(canvasWidth, canvasHeight, ev.Config().Extent()),
		trail:   make([]vec.Vec3, 0, trailCapacity),
		history: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.status == particle.Moving {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	next, err := m.stepper.Step(m.state, m.cfg.Dt)
	if err != nil {
		m.running = false
		return
	}
	m.state = next
	m.t += m.cfg.Dt
	m.steps++

	m.trail = append(m.trail, m.state.Pos)
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}
	m.history = append(m.history, m.state.Vel.Norm())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}

	switch {
	case m.state.Collided:
		m.status = particle.Collided
	case m.steps >= m.cfg.MaxSteps:
		m.status = particle.Exhausted
	}
}

func (m *Model) reset() {
	m.state = m.initial
	m.t = 0
	m.steps = 0
	m.status = particle.Moving
	m.trail = m.trail[:0]
	m.history = m.history[:0]
	m.running = true
}

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawGeometry(m.ev.Config())
	m.canvas.DrawTrail(m.trail)
	m.canvas.Plot(m.state.Pos.X, m.state.Pos.Z, '@')
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(string(m.ev.Config().Kind))) + "\n")
	s.WriteString(statusLine(m.status, m.running) + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	e := m.ev.At(m.state.Pos)
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d / %d", m.steps, m.cfg.MaxSteps)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f, %.2f)", m.state.Pos.X, m.state.Pos.Y, m.state.Pos.Z)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.3f m/s", m.state.Vel.Norm())) + "\n")
	s.WriteString(labelStyle.Render("|E|") + valueStyle.Render(fmt.Sprintf("%.3e V/m", e.Norm())) + "\n")
	s.WriteString(labelStyle.Render("Elements") + valueStyle.Render(fmt.Sprintf("%d", m.ev.NumElements())) + "\n")
	s.WriteString(labelStyle.Render("Backend") + valueStyle.Render(compute.GetBackend().Name()) + "\n")

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func statusLine(st particle.Status, running bool) string {
	if st == particle.Collided {
		return "COLLIDED"
	}
	if st == particle.Exhausted {
		return "EXHAUSTED"
	}
	if !running {
		return "PAUSED"
	}
	return "RUNNING"
}
