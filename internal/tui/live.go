// Package tui provides a live terminal view of the spring pendulum.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springbench/internal/integrators"
	"github.com/san-kum/springbench/internal/physics"
	"github.com/san-kum/springbench/internal/sim"
)

const (
	graphWidth      = 78
	graphHeight     = 12
	historyCapacity = 240
	substeps        = 8
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

type TickMsg time.Time

// Model steps the pendulum on each tick and renders a rolling trace of
// the arm angle.
type Model struct {
	pend       *physics.SpringPendulum
	integrator *integrators.RK4
	state      sim.State
	initState  sim.State
	t, dt      float64
	fps        int
	running    bool
	history    []float64
}

func NewModel(pend *physics.SpringPendulum, initState sim.State, dt float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		pend:       pend,
		integrator: integrators.NewRK4(),
		state:      initState.Clone(),
		initState:  initState.Clone(),
		dt:         dt,
		fps:        fps,
		running:    true,
		history:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
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
			m.state = m.initState.Clone()
			m.t = 0
			m.history = m.history[:0]
		}
	case TickMsg:
		if m.running {
			for i := 0; i < substeps; i++ {
				m.state = m.integrator.Step(m.pend, m.state, m.t, m.dt)
				m.t += m.dt
			}
			m.history = append(m.history, m.state[0])
			if len(m.history) > historyCapacity {
				m.history = m.history[len(m.history)-historyCapacity:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	header := headerStyle.Render("springbench live: massive spring pendulum")

	graph := ""
	if len(m.history) > 1 {
		graph = asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("theta (rad)"),
		)
	}

	status := ""
	if !m.running {
		status = pausedStyle.Render(" PAUSED")
	}

	stats := fmt.Sprintf("%s%s\n%s%s\n%s%s\n%s%s",
		labelStyle.Render("t"), valueStyle.Render(fmt.Sprintf("%8.3f s%s", m.t, status)),
		labelStyle.Render("theta"), valueStyle.Render(fmt.Sprintf("%8.4f rad", m.state[0])),
		labelStyle.Render("ext"), valueStyle.Render(fmt.Sprintf("%8.5f m", m.state[2])),
		labelStyle.Render("energy"), valueStyle.Render(fmt.Sprintf("%8.4f J", m.pend.Energy(m.state))),
	)

	help := helpStyle.Render("space pause · r reset · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		frameStyle.Render(graph),
		frameStyle.Render(stats),
		help,
	)
}

// Run starts the live view and blocks until the user quits.
func Run(pend *physics.SpringPendulum, initState sim.State, dt float64, fps int) error {
	p := tea.NewProgram(NewModel(pend, initState, dt, fps))
	_, err := p.Run()
	return err
}
