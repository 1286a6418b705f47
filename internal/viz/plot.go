package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

const (
	DefaultPlotWidth  = 70
	DefaultPlotHeight = 15
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Green,
	asciigraph.Red, asciigraph.Blue, asciigraph.White,
}

// PlotSeries draws a single line plot.
func PlotSeries(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return Subtle.Render("(no data)")
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan),
	)
}

// PlotCompare overlays several series, one color each, with a legend.
func PlotCompare(series [][]float64, names []string, caption string, width, height int) string {
	data := make([][]float64, 0, len(series))
	colors := make([]asciigraph.AnsiColor, 0, len(series))
	legends := make([]string, 0, len(series))
	for i, s := range series {
		if len(s) == 0 {
			continue
		}
		data = append(data, s)
		colors = append(colors, seriesColors[i%len(seriesColors)])
		legends = append(legends, names[i])
	}
	if len(data) == 0 {
		return Subtle.Render("(no data)")
	}
	return asciigraph.PlotMany(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}

// Relative rescales values to their relative deviation from the first one.
func Relative(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || values[0] == 0 {
		copy(out, values)
		return out
	}
	for i, v := range values {
		out[i] = (v - values[0]) / values[0]
	}
	return out
}

func FormatFloat(v float64) string { return fmt.Sprintf("%.6g", v) }
