package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/varint/internal/config"
	"github.com/san-kum/varint/internal/viz"
)

var (
	dataDir string
	theme   string

	family     string
	nodes      int
	explicit   bool
	reference  string
	dt         float64
	start      float64
	duration   float64
	p0         float64
	q0         float64
	params     map[string]string
	configFile string
	preset     string

	truncate  int
	showMap   bool
	frameRate int
	live      bool
	noSave    bool
	phase     bool
	output    string
	svgKind   string
	dots      bool

	levels    int
	sweepDts  []float64
	sweepN    []int
	metric    string

	trials  int
	perturb float64
	seed    int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "varint",
		Short: "derive and run variational integrators",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viz.SetTheme(theme)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".varint", "data directory")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "color theme")

	deriveCmd := &cobra.Command{
		Use:   "derive [model]",
		Short: "print the discrete Euler-Lagrange equations",
		Args:  cobra.ExactArgs(1),
		RunE:  deriveSystem,
	}
	addIntegratorFlags(deriveCmd)
	deriveCmd.Flags().IntVar(&truncate, "truncate", -1, "truncate equations to this order in h")
	deriveCmd.Flags().BoolVar(&showMap, "map", false, "also extract the explicit map")
	deriveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "bind h to this step before extracting the map (needed beyond 4 nodes)")

	rulesCmd := &cobra.Command{
		Use:   "rules [family]",
		Short: "print quadrature nodes and weights",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printRules,
	}
	rulesCmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "number of nodes")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addIntegratorFlags(runCmd)
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "redraw while integrating")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "step a model interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addIntegratorFlags(liveCmd)
	addRunFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [model] [family|rk4|verlet] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "number of nodes")
	compareCmd.Flags().BoolVar(&explicit, "explicit", true, "use explicit maps")
	compareCmd.Flags().StringToStringVar(&params, "param", nil, "model parameter, name=value")
	addRunFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&phase, "phase", false, "also draw the phase portrait")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	exportCmd.Flags().StringVar(&svgKind, "svg", "", "write an SVG figure instead of JSON (phase, position, energy)")
	exportCmd.Flags().BoolVar(&dots, "dots", false, "draw the SVG from the braille canvas")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate the period and spectrum of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	orderCmd := &cobra.Command{
		Use:   "order [model]",
		Short: "measure the convergence order by halving dt",
		Args:  cobra.ExactArgs(1),
		RunE:  measureOrder,
	}
	addIntegratorFlags(orderCmd)
	addRunFlags(orderCmd)
	orderCmd.Flags().IntVar(&levels, "levels", 3, "number of halvings")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "grid search dt and node count for the smallest metric",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepSettings,
	}
	addIntegratorFlags(sweepCmd)
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{0.2, 0.1, 0.05}, "timesteps to try")
	sweepCmd.Flags().IntSliceVar(&sweepN, "node-counts", []int{2, 3, 4}, "node counts to try")
	sweepCmd.Flags().StringVar(&metric, "metric", "observable_drift", "metric to minimise")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models and their parameters",
		RunE:  listModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Printf("  %-10s %s/%d dt=%g\n", p, cfg.Family, cfg.Nodes, cfg.Dt)
			}
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [model]",
		Short: "run trials from perturbed initial conditions",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	addIntegratorFlags(monteCarloCmd)
	addRunFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturbation", 0.1, "maximum offset of p0 and q0")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for time based")

	rootCmd.AddCommand(deriveCmd, rulesCmd, runCmd, liveCmd, compareCmd, listCmd, plotCmd, exportCmd,
		analyzeCmd, orderCmd, sweepCmd, scenarioCmd, monteCarloCmd, modelsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addIntegratorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&family, "family", "GaussLobatto", "quadrature family, or custom with --config")
	cmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "number of nodes")
	cmd.Flags().BoolVar(&explicit, "explicit", true, "extract an explicit map instead of root finding")
	cmd.Flags().StringToStringVar(&params, "param", nil, "model parameter, name=value")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reference, "reference", "", "use a classical integrator (rk4, verlet)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&start, "start", 0, "start time")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&p0, "p0", 0, "initial momentum")
	cmd.Flags().Float64Var(&q0, "q0", config.DefaultQ0, "initial position")
}
