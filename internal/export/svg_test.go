package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/varint/internal/sim"
	"github.com/san-kum/varint/internal/viz"
)

func circle() *sim.Trajectory {
	tr := &sim.Trajectory{Steps: 4}
	for i, xy := range [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 0}} {
		tr.Times = append(tr.Times, float64(i))
		tr.Positions = append(tr.Positions, xy[0])
		tr.Momenta = append(tr.Momenta, xy[1])
		tr.Observables = append(tr.Observables, 0.5)
	}
	return tr
}

func TestPathSVG(t *testing.T) {
	svg := PathSVG([]float64{0, 1, 2}, []float64{0, 1, 0}, Options{Width: 100, Height: 50, Stroke: "#fff"})
	if !strings.HasPrefix(svg, "<?xml") || !strings.Contains(svg, `stroke="#fff"`) {
		t.Fatalf("unexpected header: %s", svg)
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}
	if PathSVG([]float64{1}, []float64{1}, DefaultOptions()) != "" {
		t.Error("expected empty output for a single point")
	}
}

func TestWriteSVGKinds(t *testing.T) {
	tr := circle()
	for _, kind := range []string{KindPhase, KindPosition, KindEnergy} {
		var buf bytes.Buffer
		if err := WriteSVG(&buf, tr, kind, DefaultOptions()); err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if !strings.Contains(buf.String(), "</svg>") {
			t.Errorf("%s: truncated output", kind)
		}
	}
	if err := WriteSVG(&bytes.Buffer{}, tr, "bogus", DefaultOptions()); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestCanvasSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasSVG(c, 4, "#0f0")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if CanvasSVG(nil, 1, "#0f0") != "" {
		t.Error("expected empty output for nil canvas")
	}
}
