package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/sim"
	"github.com/san-kum/varint/internal/viz"
)

const (
	trailLength   = 400
	historyLength = 60
)

// Run describes what the live view steps.
type Run struct {
	Name       string
	Model      string
	Stepper    sim.Stepper
	Init       dynamo.Pair
	Span       dynamo.Span
	Dt         float64
	Observable dynamo.Observable
}

type model struct {
	run Run

	x      dynamo.Pair
	t      float64
	k      int
	e0     float64
	paused bool
	done   bool
	err    error
	speed  float64
	theme  string

	qs, ps  []float64
	history []float64

	width  int
	height int
}

func newModel(run Run) model {
	m := model{run: run, speed: 1, theme: viz.CurrentTheme.Name, width: 80, height: 24}
	m.reset()
	return m
}

func (m *model) reset() {
	m.x = m.run.Init
	m.t = m.run.Span.Start
	m.k = 0
	m.done = false
	m.err = nil
	m.qs = []float64{m.x.Q}
	m.ps = []float64{m.x.P}
	m.e0 = m.observe()
	m.history = []float64{m.e0}
}

func (m model) observe() float64 {
	if m.run.Observable == nil {
		return 0
	}
	return m.run.Observable(m.x.P, m.x.Q)
}

func (m model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.paused && !m.done {
			steps := max(int(m.speed), 1)
			for i := 0; i < steps && !m.done; i++ {
				m.step()
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "r":
		m.reset()
		return m, tea.ClearScreen
	case "n":
		if m.paused && !m.done {
			m.step()
		}
	case "t":
		next := viz.NextTheme(m.theme)
		viz.SetTheme(next.Name)
		m.theme = next.Name
	case "+", "=":
		m.speed = math.Min(m.speed*2, 64)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 1)
	case "0":
		m.speed = 1
	}
	return m, nil
}

// step advances one dt with the same step count rule as sim.Integrate.
func (m *model) step() {
	if m.k >= sim.StepCount(m.run.Span, m.run.Dt) {
		m.done = true
		return
	}
	next, err := m.run.Stepper.Step(m.t, m.x, m.run.Dt)
	if err == nil && !next.IsValid() {
		err = dynamo.ErrInvalidState
	}
	if err != nil {
		m.err = &dynamo.ConvergenceError{Step: m.k + 1, Time: m.t + m.run.Dt, Last: m.x, Wrapped: err}
		m.done = true
		return
	}

	m.k++
	m.x = next
	m.t = m.run.Span.Start + float64(m.k)*m.run.Dt

	m.qs = append(m.qs, m.x.Q)
	m.ps = append(m.ps, m.x.P)
	if len(m.qs) > trailLength {
		m.qs, m.ps = m.qs[1:], m.ps[1:]
	}
	m.history = append(m.history, m.observe())
	if len(m.history) > historyLength {
		m.history = m.history[1:]
	}
}

func (m model) drift() float64 {
	e := m.history[len(m.history)-1]
	if m.e0 == 0 {
		return e
	}
	return (e - m.e0) / math.Abs(m.e0)
}

func (m model) View() string {
	cw := max(m.width-8, 40)
	ch := max(m.height-12, 8)

	var b strings.Builder

	status := viz.StatusOK.Render("● running")
	switch {
	case m.err != nil:
		status = viz.ErrorText.Render("✗ failed")
	case m.done:
		status = viz.StatusOK.Render("✓ done")
	case m.paused:
		status = viz.StatusPause.Render("○ paused")
	}
	fmt.Fprintf(&b, "\n   %s  %s  %s\n", viz.Title.Render(m.run.Model), viz.Subtle.Render(m.run.Name), status)

	progress := (m.t - m.run.Span.Start) / m.run.Span.Duration()
	fmt.Fprintf(&b, "   %s %s  %s\n\n",
		viz.ProgressBar(progress, 36),
		viz.Subtle.Render(fmt.Sprintf("t=%.2f/%.2f", m.t, m.run.Span.End)),
		viz.Subtle.Render(fmt.Sprintf("x%.0f", m.speed)))

	portrait := viz.PhasePortrait(m.qs, m.ps, cw, ch)
	for _, row := range strings.Split(strings.TrimSuffix(portrait, "\n"), "\n") {
		b.WriteString("   " + row + "\n")
	}

	fmt.Fprintf(&b, "\n   %s%s  %s%s  %s%s\n",
		viz.MetricLabel.Render("q="), viz.MetricValue.Render(fmt.Sprintf("%.4f", m.x.Q)),
		viz.MetricLabel.Render("p="), viz.MetricValue.Render(fmt.Sprintf("%.4f", m.x.P)),
		viz.MetricLabel.Render("drift="), viz.MetricValue.Render(fmt.Sprintf("%.2e", m.drift())))
	fmt.Fprintf(&b, "   %s %s\n", viz.MetricLabel.Render("E"), viz.Sparkline(m.history, 40))

	if m.err != nil {
		b.WriteString("   " + viz.ErrorText.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + viz.KeyHint.Render("   space pause  n step  ±speed  r reset  t theme  q quit") + "\n")
	return b.String()
}

// RunInteractive opens the live view in the alternate screen. It returns the
// step error, if any, after the user quits.
func RunInteractive(run Run) error {
	p := tea.NewProgram(newModel(run), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok {
		return fm.err
	}
	return nil
}
