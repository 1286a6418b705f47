package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/varint/internal/automation"
	"github.com/san-kum/varint/internal/experiment"
	"github.com/san-kum/varint/internal/storage"
	"github.com/san-kum/varint/internal/viz"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Name != "" {
		fmt.Println(viz.Title.Render(sc.Name))
	}
	if sc.Description != "" {
		fmt.Println(viz.Subtle.Render(sc.Description))
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := automation.RunScenario(ctx, sc, experiment.NewRegistry(), st, os.Stdout)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODEL\tINTEGRATOR\tSTEPS\tMAX DRIFT\tRUN ID")
	for i, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.3e\t%s\n",
			i+1, r.Result.Model, r.Result.Name, r.Result.Trajectory.Len()-1, r.Result.Summary.MaxDrift, id)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:         base,
		Perturbation: perturb,
		NumTrials:    trials,
		Seed:         seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tP0\tQ0\tFINAL P\tFINAL Q\tMAX DRIFT\tSTATUS")
	for _, r := range results {
		status := "stable"
		switch {
		case r.Err != nil:
			status = r.Err.Error()
		case !r.Stable:
			status = "unstable"
		}
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.6f\t%.6f\t%.3e\t%s\n",
			r.TrialID, r.Init.P, r.Init.Q, r.Final.P, r.Final.Q, r.Drift, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %s  unstable: %s\n",
		viz.StatusOK.Render(fmt.Sprint(stable)), viz.ErrorText.Render(fmt.Sprint(unstable)))
	return nil
}
