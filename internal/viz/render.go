package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/varint/internal/integrators"
	"github.com/san-kum/varint/internal/metrics"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/symbolic"
)

func renderEquations(title string, eqs []symbolic.Equation) string {
	var b strings.Builder
	b.WriteString(Header.Render(title))
	b.WriteByte('\n')
	for i, eq := range eqs {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			MetricLabel.Render(fmt.Sprintf("[%d]", i+1)),
			Title.Render(eq.LHS.String()),
			Subtle.Render("="),
			Equation.Render(eq.RHS.String()))
	}
	return b.String()
}

// RenderSystem formats the DEL equations of sys.
func RenderSystem(sys *integrators.DELSystem) string {
	title := fmt.Sprintf("discrete Euler-Lagrange equations, n=%d", sys.N)
	if sys.Rule != nil {
		title = fmt.Sprintf("%s  %s", title, sys.Rule)
	}
	return renderEquations(title, sys.Equations)
}

// RenderMap formats an explicit one-step map.
func RenderMap(m *integrators.ExplicitMap) string {
	return renderEquations(fmt.Sprintf("explicit map, n=%d", m.N), m.Equations)
}

// RenderRule prints the nodes and weights of r as a two column table.
func RenderRule(r *quadrature.Rule) string {
	var b strings.Builder
	b.WriteString(Header.Render(fmt.Sprintf("%s  on [%g, %g]  multiplier %.12g", r, r.Lo, r.Hi, r.Multiplier)))
	b.WriteByte('\n')

	col := lipgloss.NewStyle().Width(26).Align(lipgloss.Right)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		MetricLabel.Inherit(col).Render("node"),
		MetricLabel.Inherit(col).Render("weight")))
	b.WriteByte('\n')
	for i := range r.Nodes {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			col.Render(fmt.Sprintf("%.16g", r.Nodes[i])),
			MetricValue.Inherit(col).Render(fmt.Sprintf("%.16g", r.Weights[i]))))
		b.WriteByte('\n')
	}
	b.WriteString(Subtle.Render(fmt.Sprintf("sum of scaled weights %.16g", r.Total())))
	b.WriteByte('\n')
	return b.String()
}

// RenderSummary shows the observable summary and metric values of a run.
func RenderSummary(name string, s metrics.Summary, values map[string]float64) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{
		Title.Render(name),
		metricLine("initial", s.Initial),
		metricLine("final", s.Final),
		metricLine("min", s.Min),
		metricLine("max", s.Max),
		metricLine("max drift", s.MaxDrift),
	}
	for _, k := range keys {
		lines = append(lines, metricLine(k, values[k]))
	}
	return Panel.Render(strings.Join(lines, "\n"))
}

func metricLine(label string, v float64) string {
	return MetricLabel.Render(fmt.Sprintf("%-18s", label)) + MetricValue.Render(FormatFloat(v))
}
