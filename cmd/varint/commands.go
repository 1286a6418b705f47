package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/varint/internal/config"
	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/experiment"
	"github.com/san-kum/varint/internal/export"
	"github.com/san-kum/varint/internal/integrators"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/sim"
	"github.com/san-kum/varint/internal/storage"
	"github.com/san-kum/varint/internal/tui"
	"github.com/san-kum/varint/internal/viz"
)

// buildConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if cfg.Model == "" {
			cfg.Model = model
		}
		if cfg.Model != model {
			return nil, fmt.Errorf("config is for model %s, not %s", cfg.Model, model)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("family") {
		cfg.Family = family
	}
	if flags.Changed("nodes") {
		cfg.Nodes = nodes
	}
	if flags.Changed("explicit") {
		cfg.Explicit = explicit
	}
	if flags.Changed("reference") {
		cfg.Reference = reference
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("start") {
		cfg.Start = start
	}
	if flags.Changed("start") || flags.Changed("time") {
		d := cfg.End - cfg.Start
		if flags.Changed("time") {
			d = duration
		}
		cfg.End = cfg.Start + d
	}
	if flags.Changed("p0") {
		cfg.P0 = p0
	}
	if flags.Changed("q0") {
		cfg.Q0 = q0
	}
	if flags.Changed("param") {
		parsed, err := parseParams(params)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		for k, v := range parsed {
			cfg.Params[k] = v
		}
	}
	return cfg, nil
}

func parseParams(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", k, err)
		}
		out[k] = f
	}
	return out, nil
}

func setup(cmd *cobra.Command, model string) (*config.Config, *experiment.Experiment, error) {
	cfg, err := buildConfig(cmd, model)
	if err != nil {
		return nil, nil, err
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, nil, err
	}
	return cfg, exp, nil
}

func deriveSystem(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	// derivation only; the map is extracted below on request
	cfg.Explicit = false
	cfg.Reference = ""
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	sys := exp.System()
	if truncate >= 0 {
		sys = sys.Truncate(truncate)
	}
	fmt.Println(viz.RenderSystem(sys))

	if showMap {
		src := exp.System()
		if cmd.Flags().Changed("dt") {
			src = src.Bind(cfg.Dt)
		}
		m, err := extractMap(src)
		if err != nil {
			return err
		}
		fmt.Println(viz.RenderMap(m))
	}
	return nil
}

func printRules(cmd *cobra.Command, args []string) error {
	families := quadrature.Families()
	if len(args) == 1 {
		f, err := quadrature.ParseFamily(args[0])
		if err != nil {
			return err
		}
		families = []quadrature.Family{f}
	}

	for _, f := range families {
		rule, err := quadrature.Lookup(f, nodes)
		if err != nil {
			if len(families) == 1 {
				return err
			}
			fmt.Println(viz.Subtle.Render(fmt.Sprintf("%s: %v", f, err)))
			continue
		}
		fmt.Println(viz.RenderRule(rule))
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setup(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts []sim.Option
	if live {
		r := tui.NewLiveRenderer(os.Stdout, cfg.Model, frameRate)
		r.Start()
		defer r.Stop()
		opts = append(opts, sim.WithObserver(r))
	}

	fmt.Printf("running %s with %s...\n", cfg.Model, exp.Name())
	res, runErr := exp.Run(ctx, opts...)
	if res == nil {
		return runErr
	}
	if runErr != nil {
		fmt.Println(viz.ErrorText.Render(runErr.Error()))
		fmt.Printf("partial trajectory: %d of %d steps\n", res.Trajectory.Len()-1, res.Trajectory.Steps)
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.NewMetadata(cfg, res.Name, res.Metrics), res.Trajectory)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("completed in %v\n", res.Elapsed)
	fmt.Printf("steps: %d\n", res.Trajectory.Len()-1)
	fmt.Println(viz.RenderSummary("energy", res.Summary, res.Metrics))
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setup(cmd, args[0])
	if err != nil {
		return err
	}
	return tui.RunInteractive(tui.Run{
		Name:       exp.Name(),
		Model:      cfg.Model,
		Stepper:    exp.Stepper(),
		Init:       cfg.Init(),
		Span:       cfg.Span(),
		Dt:         cfg.Dt,
		Observable: exp.Model().Energy,
	})
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfgs := experiment.Variants(base, args[1:], base.Nodes)
	outcomes := experiment.Compare(ctx, experiment.NewRegistry(), cfgs)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tFINAL Q\tFINAL P\tMAX DRIFT\tTIME\tSTATUS")

	var series [][]float64
	var names []string
	for i, o := range outcomes {
		if o.Result == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t%v\n", args[i+1], o.Err)
			continue
		}
		tr := o.Result.Trajectory
		last := tr.Pair(tr.Len() - 1)
		status := "ok"
		if o.Err != nil {
			status = o.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.6f\t%.3e\t%v\t%s\n",
			o.Result.Name, tr.Len()-1, last.Q, last.P, o.Result.Summary.MaxDrift, o.Result.Elapsed, status)
		series = append(series, viz.Relative(tr.Observables))
		names = append(names, o.Result.Name)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.PlotCompare(series, names, "relative energy error", viz.DefaultPlotWidth, viz.DefaultPlotHeight))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSPAN\tDT\tINTEGRATOR\tDRIFT\tCOMPLETE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%.4g\t%s\t%.2e\t%t\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Start, run.End,
			run.Dt,
			run.Integrator,
			run.Summary.MaxDrift,
			run.Complete,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s  integrator: %s\n", meta.Model, meta.Integrator)
	fmt.Printf("samples: %d\n\n", tr.Len())

	plots := []struct {
		caption string
		data    []float64
	}{
		{"q (position)", tr.Positions},
		{"p (momentum)", tr.Momenta},
		{"relative energy error", viz.Relative(tr.Observables)},
	}
	for _, p := range plots {
		fmt.Println(viz.PlotSeries(p.data, p.caption, viz.DefaultPlotWidth, viz.DefaultPlotHeight))
		fmt.Println()
	}

	if phase {
		fmt.Println(viz.Title.Render("phase portrait (q horizontal, p vertical)"))
		fmt.Print(viz.PhasePortrait(tr.Positions, tr.Momenta, viz.DefaultPlotWidth/2, viz.DefaultPlotHeight))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if svgKind == "" {
		return storage.ExportJSON(output, *meta, tr)
	}
	opts := export.DefaultOptions()
	if !dots {
		return export.SaveSVG(output, tr, svgKind, opts)
	}
	xs, ys, err := export.Axes(tr, svgKind)
	if err != nil {
		return err
	}
	c := viz.NewCanvas(viz.DefaultPlotWidth, viz.DefaultPlotHeight)
	c.Polyline(viz.FitBounds(xs, ys), xs, ys)
	return writeOutput(output, export.CanvasSVG(c, 4, opts.Stroke))
}

func listModels(cmd *cobra.Command, args []string) error {
	r := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPARAMS\tPRESETS")
	for _, name := range r.ListModels() {
		m, err := r.GetModel(name, nil)
		if err != nil {
			return err
		}
		var ps []string
		if c, ok := m.(dynamo.Configurable); ok {
			for k, v := range c.GetParams() {
				ps = append(ps, fmt.Sprintf("%s=%g", k, v))
			}
			sort.Strings(ps)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(ps, " "), strings.Join(config.ListPresets(name), " "))
	}
	return w.Flush()
}

func extractMap(sys *integrators.DELSystem) (*integrators.ExplicitMap, error) {
	m, err := integrators.ExtractExplicit(sys)
	if errors.Is(err, dynamo.ErrExtractionAmbiguity) {
		return nil, fmt.Errorf("%w (use the implicit stepper for this model)", err)
	}
	return m, err
}
