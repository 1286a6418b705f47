package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/integrators"
	"github.com/san-kum/varint/internal/metrics"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/symbolic"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(10, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}
	c.Clear()
	if c.String() != "⠀⠀\n" {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestPhasePortraitCircle(t *testing.T) {
	var qs, ps []float64
	for i := 0; i <= 64; i++ {
		a := 2 * math.Pi * float64(i) / 64
		qs = append(qs, math.Cos(a))
		ps = append(ps, math.Sin(a))
	}
	out := PhasePortrait(qs, ps, 20, 10)
	if lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n"); len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if !strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28ff }) {
		t.Error("expected lit dots")
	}
}

func TestFitBoundsDegenerate(t *testing.T) {
	b := FitBounds([]float64{1, 1}, []float64{0, 0})
	if !(b.XMax > b.XMin && b.YMax > b.YMin) {
		t.Errorf("expected widened bounds, got %+v", b)
	}
}

func TestRelative(t *testing.T) {
	got := Relative([]float64{2, 2.2, 1.9})
	if math.Abs(got[1]-0.1) > 1e-12 || math.Abs(got[2]+0.05) > 1e-12 {
		t.Errorf("unexpected relative series %v", got)
	}
}

func TestRenderRule(t *testing.T) {
	r, err := quadrature.Lookup(quadrature.GaussLobatto, 3)
	if err != nil {
		t.Fatal(err)
	}
	out := RenderRule(r)
	if !strings.Contains(out, "GaussLobatto") || !strings.Contains(out, "0.3333333333333333") {
		t.Errorf("expected rule table, got\n%s", out)
	}
}

func TestRenderSystemAndMap(t *testing.T) {
	harmonic := func(q, dq symbolic.Expr) symbolic.Expr {
		return symbolic.Scale(symbolic.Sub(symbolic.Pow(dq, 2), symbolic.Pow(q, 2)), 0.5)
	}
	sys, err := integrators.FromFamily(2, harmonic, nil, quadrature.NewtonCotes, dynamo.DefaultSymbols())
	if err != nil {
		t.Fatal(err)
	}
	out := RenderSystem(sys)
	if !strings.Contains(out, "[1]") || !strings.Contains(out, "[2]") || !strings.Contains(out, "p[0]") {
		t.Errorf("expected two numbered equations, got\n%s", out)
	}

	m, err := integrators.ExtractExplicit(sys)
	if err != nil {
		t.Fatal(err)
	}
	if out := RenderMap(m); !strings.Contains(out, "q[1]") {
		t.Errorf("expected q[1] assignment, got\n%s", out)
	}
}

func TestRenderSummaryAndPlots(t *testing.T) {
	out := RenderSummary("GaussLobatto/3", metrics.Summary{Initial: 0.5, Final: 0.5}, map[string]float64{"stability": 1})
	if !strings.Contains(out, "stability") || !strings.Contains(out, "GaussLobatto/3") {
		t.Errorf("unexpected summary\n%s", out)
	}

	if PlotSeries(nil, "", 10, 5) == "" {
		t.Error("expected placeholder for empty series")
	}
	plot := PlotCompare([][]float64{{1, 2, 3}, {3, 2, 1}}, []string{"a", "b"}, "cmp", 20, 5)
	if !strings.Contains(plot, "cmp") {
		t.Errorf("expected caption in plot\n%s", plot)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)

	SetTheme("ocean")
	if CurrentTheme.Name != "ocean" {
		t.Errorf("expected ocean, got %s", CurrentTheme.Name)
	}
	if GetTheme("nope").Name != "cyberpunk" {
		t.Error("expected fallback theme")
	}
	if NextTheme("ocean").Name != Themes[0].Name {
		t.Error("expected wrap around")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("expected a name per theme")
	}
}
