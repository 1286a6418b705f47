package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/viz"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the run as a sim.Observer, at most frameRate times
// per second. Pendulum runs draw the bob; everything else a phase portrait.
type LiveRenderer struct {
	out       io.Writer
	model     string
	frameRate int
	lastFrame time.Time
	qs, ps    []float64
}

func NewLiveRenderer(out io.Writer, model string, frameRate int) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		model:     model,
		frameRate: max(frameRate, 1),
		qs:        make([]float64, 0, 256),
		ps:        make([]float64, 0, 256),
	}
}

func (r *LiveRenderer) OnStep(k int, t float64, x dynamo.Pair, value float64) {
	r.qs = append(r.qs, x.Q)
	r.ps = append(r.ps, x.P)
	if len(r.qs) > trailLength {
		r.qs, r.ps = r.qs[1:], r.ps[1:]
	}

	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.render(k, t, x, value)
}

func (r *LiveRenderer) render(k int, t float64, x dynamo.Pair, value float64) {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s  step %d  t=%.2f\n", r.model, k, t)
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	var frame string
	if r.model == "pendulum" {
		frame = drawPendulum(x.Q)
	} else {
		frame = viz.PhasePortrait(r.qs, r.ps, width/2, height/2)
	}
	for _, row := range strings.Split(strings.TrimSuffix(frame, "\n"), "\n") {
		b.WriteString("  " + row + "\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	fmt.Fprintf(&b, "  q=%.4f p=%.4f E=%.6g\n", x.Q, x.P, value)
	fmt.Fprint(r.out, b.String())
}

func drawPendulum(theta float64) string {
	c := viz.NewCanvas(width/2, height/2)
	px, py := width/2, 4
	length := float64(height*4-12) * 0.5
	bx := px + int(length*math.Sin(theta)*2)
	by := py + int(length*math.Cos(theta))
	c.DrawLine(px, py, bx, by)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			c.Set(bx+dx, by+dy)
		}
	}
	return c.String()
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
