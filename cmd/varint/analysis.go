package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/varint/internal/analysis"
	"github.com/san-kum/varint/internal/experiment"
	"github.com/san-kum/varint/internal/optim"
	"github.com/san-kum/varint/internal/sim"
	"github.com/san-kum/varint/internal/storage"
	"github.com/san-kum/varint/internal/viz"
)

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s  model: %s  integrator: %s\n\n", meta.ID, meta.Model, meta.Integrator)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ESTIMATE\tPERIOD")
	if p, err := analysis.CrossingPeriod(tr.Times, tr.Positions); err == nil {
		fmt.Fprintf(w, "mean crossings\t%.8g\n", p)
	} else {
		fmt.Fprintf(w, "mean crossings\t%v\n", err)
	}
	if p, err := analysis.DominantPeriod(tr.Positions, meta.Dt); err == nil {
		fmt.Fprintf(w, "spectral peak\t%.8g\n", p)
	} else {
		fmt.Fprintf(w, "spectral peak\t%v\n", err)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	spec, err := analysis.PowerSpectrum(tr.Positions, meta.Dt)
	if err != nil {
		return nil
	}
	// the peak and a few harmonics, not the whole band up to Nyquist
	n := min(len(spec.Power), max(4*spec.Peak(), 16))
	fmt.Println()
	fmt.Println(viz.PlotSeries(spec.Power[1:n], "power spectrum of q", viz.DefaultPlotWidth, viz.DefaultPlotHeight))
	return nil
}

func measureOrder(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	r := experiment.NewRegistry()
	newStepper := func(h float64) (sim.Stepper, error) {
		c := *cfg
		c.Dt = h
		exp := experiment.New(&c)
		if err := exp.Setup(r); err != nil {
			return nil, err
		}
		return exp.Stepper(), nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	est, err := analysis.ConvergenceOrder(ctx, newStepper, cfg.Init(), cfg.Span(), cfg.Dt, levels)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tDIFFERENCE")
	for i := range est.Dts {
		fmt.Fprintf(w, "%g\t%.3e\n", est.Dts[i], est.Errors[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nestimated order: %s\n", viz.MetricValue.Render(fmt.Sprintf("%.2f", est.Order)))
	return nil
}

func sweepSettings(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	axes := []optim.Axis{{Name: "dt", Values: sweepDts}}
	if base.Reference == "" && !base.IsCustom() {
		ns := make([]float64, len(sweepN))
		for i, n := range sweepN {
			ns[i] = float64(n)
		}
		axes = append(axes, optim.Axis{Name: "nodes", Values: ns})
	}
	gs := optim.NewGridSearch(axes...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := experiment.NewRegistry()
	fmt.Printf("sweeping %d settings for %s...\n", gs.Size(), base.Model)
	best, points, err := gs.Search(ctx, func(values map[string]float64) (*experiment.Experiment, error) {
		exp := experiment.New(optim.Apply(base, values))
		if err := exp.Setup(r); err != nil {
			return nil, err
		}
		return exp, nil
	}, metric)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DT\tNODES\t%s\n", metric)
	for _, p := range points {
		nodes := "-"
		if n, ok := p.Values["nodes"]; ok {
			nodes = fmt.Sprintf("%d", int(n))
		}
		if p.Err != nil {
			fmt.Fprintf(w, "%g\t%s\t%v\n", p.Values["dt"], nodes, p.Err)
			continue
		}
		fmt.Fprintf(w, "%g\t%s\t%.3e\n", p.Values["dt"], nodes, p.Metric)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest: ")
	for _, k := range best.Names() {
		fmt.Printf("%s=%g ", k, best.Values[k])
	}
	fmt.Printf("(%s %.3e)\n", metric, best.Metric)
	return nil
}

func writeOutput(path, content string) error {
	if path == "-" {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
