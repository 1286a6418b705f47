// Package export renders stored trajectories as standalone SVG figures.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/varint/internal/sim"
	"github.com/san-kum/varint/internal/viz"
)

// Plot kinds accepted by WriteSVG.
const (
	KindPhase    = "phase"
	KindPosition = "position"
	KindEnergy   = "energy"
)

type Options struct {
	Width, Height int
	Stroke        string
}

func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Stroke: string(viz.CurrentTheme.Secondary)}
}

// Axes picks the x and y series of a trajectory for the given kind.
func Axes(tr *sim.Trajectory, kind string) (xs, ys []float64, err error) {
	switch kind {
	case KindPhase:
		return tr.Positions, tr.Momenta, nil
	case KindPosition:
		return tr.Times, tr.Positions, nil
	case KindEnergy:
		return tr.Times, viz.Relative(tr.Observables), nil
	default:
		return nil, nil, fmt.Errorf("unknown plot kind: %s", kind)
	}
}

// PathSVG draws xs/ys as a single path scaled into the figure.
func PathSVG(xs, ys []float64, opts Options) string {
	if len(xs) < 2 {
		return ""
	}
	b := viz.FitBounds(xs, ys)
	w, h := float64(opts.Width), float64(opts.Height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		opts.Width, opts.Height, opts.Width, opts.Height, opts.Stroke)

	for i := range xs {
		x := (xs[i] - b.XMin) / (b.XMax - b.XMin) * w
		y := h - (ys[i]-b.YMin)/(b.YMax-b.YMin)*h
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}

// CanvasSVG converts a braille canvas to one circle per lit dot.
func CanvasSVG(c *viz.Canvas, scale float64, fill string) string {
	if c == nil {
		return ""
	}
	width := float64(c.Width) * scale * 2
	height := float64(c.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill)

	r := scale * 0.4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !c.Lit(col*2+dx, row*4+dy) {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
				}
			}
		}
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteSVG renders one plot kind of tr to w.
func WriteSVG(w io.Writer, tr *sim.Trajectory, kind string, opts Options) error {
	xs, ys, err := Axes(tr, kind)
	if err != nil {
		return err
	}
	svg := PathSVG(xs, ys, opts)
	if svg == "" {
		return fmt.Errorf("need at least 2 samples, got %d", len(xs))
	}
	_, err = io.WriteString(w, svg)
	return err
}

// SaveSVG writes to path, or to stdout when path is "-".
func SaveSVG(path string, tr *sim.Trajectory, kind string, opts Options) error {
	if path == "-" {
		return WriteSVG(os.Stdout, tr, kind, opts)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteSVG(file, tr, kind, opts)
}
