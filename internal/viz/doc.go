// Package viz renders derivation results and trajectories for the terminal.
//
//   - [RenderSystem], [RenderMap]: DEL equations and explicit maps
//   - [RenderRule]: quadrature nodes and weights
//   - [PlotSeries], [PlotCompare]: asciigraph line plots
//   - [Canvas]: Braille canvas used for phase portraits
//
// Colors come from the current [Theme].
package viz
