package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/station-sim/station-sim/sim/recording"
	"github.com/station-sim/station-sim/sim/report"
	"github.com/station-sim/station-sim/sim/station"
	"github.com/station-sim/station-sim/sim/workload"
)

var (
	scenarioNames []string // Built-in presets to run, in order
	configPaths   []string // YAML scenario files to run after the presets
	seed          int64    // Seed override for every scenario
	horizon       float64  // Horizon override (minutes)
	arrivalMode   string   // Arrival mode override (per_fuel or combined)
	logLevel      string   // Log verbosity level
	resultsPath   string   // File to write JSON results to
	jsonOutput    bool     // Print JSON results to stdout instead of tables
	queueSamples  bool     // Include queue-length series in JSON results
	record        bool     // Export raw runs to SQLite
	dbPath        string   // SQLite file for --record (default: generated name)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "station-sim",
	Short: "Discrete-event simulator for multi-fuel filling stations",
}

// runOptions collects what a run needs besides the scenarios themselves.
type runOptions struct {
	out          io.Writer
	jsonOutput   bool
	queueSamples bool
	recorder     *recording.Recorder
}

// overrides are CLI values that replace the scenario's own settings.
type overrides struct {
	seed        *int64
	horizon     *float64
	arrivalMode *string
}

// loadScenarios resolves presets and files into specs, applying overrides.
func loadScenarios(names, paths []string, ov overrides) ([]*workload.ScenarioSpec, error) {
	var specs []*workload.ScenarioSpec
	for _, name := range names {
		if name == "all" {
			for _, n := range workload.ScenarioNames() {
				s, _ := workload.Scenario(n, workload.DefaultSeed)
				specs = append(specs, s)
			}
			continue
		}
		s, err := workload.Scenario(name, workload.DefaultSeed)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	for _, p := range paths {
		s, err := workload.LoadScenarioSpec(p)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no scenarios selected")
	}
	for _, s := range specs {
		if ov.seed != nil {
			s.Seed = *ov.seed
		}
		if ov.horizon != nil {
			s.Horizon = *ov.horizon
		}
		if ov.arrivalMode != nil {
			s.ArrivalMode = *ov.arrivalMode
		}
	}
	return specs, nil
}

// runScenarios simulates every spec and reports the results.
func runScenarios(specs []*workload.ScenarioSpec, opts runOptions) ([]report.ScenarioResult, error) {
	results := make([]report.ScenarioResult, 0, len(specs))
	for _, spec := range specs {
		logrus.Infof("Running scenario %q (seed=%d, horizon=%.1f min)", spec.Name, spec.Seed, spec.Horizon)
		res, err := workload.Run(spec)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", spec.Name, err)
		}
		r := report.Summarize(spec.Name, spec.Description, res, report.Options{IncludeQueueSamples: opts.queueSamples})
		if opts.recorder != nil {
			if err := opts.recorder.WriteRun(r.RunID, spec.Name, res); err != nil {
				return results, fmt.Errorf("recording scenario %q: %w", spec.Name, err)
			}
		}
		results = append(results, r)
		if !opts.jsonOutput {
			report.Print(opts.out, r)
			fmt.Fprintln(opts.out)
		}
	}
	if !opts.jsonOutput && len(results) > 1 {
		report.Compare(opts.out, results)
	}
	return results, nil
}

// runCmd executes the scenarios selected by the CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one or more station scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		var ov overrides
		if cmd.Flags().Changed("seed") {
			ov.seed = &seed
		}
		if cmd.Flags().Changed("horizon") {
			ov.horizon = &horizon
		}
		if cmd.Flags().Changed("arrival-mode") {
			ov.arrivalMode = &arrivalMode
		}
		names := scenarioNames
		if len(configPaths) > 0 && !cmd.Flags().Changed("scenario") {
			names = nil
		}
		specs, err := loadScenarios(names, configPaths, ov)
		if err != nil {
			logrus.Fatalf("Unable to load scenarios: %v", err)
		}

		opts := runOptions{out: os.Stdout, jsonOutput: jsonOutput, queueSamples: queueSamples}
		if record {
			rec, err := recording.New(dbPath)
			if err != nil {
				logrus.Fatalf("Unable to create recording: %v", err)
			}
			defer func() {
				if err := rec.Close(); err != nil {
					logrus.Errorf("Closing recording: %v", err)
				}
			}()
			opts.recorder = rec
		}

		results, err := runScenarios(specs, opts)
		if err != nil {
			if errors.Is(err, station.ErrInvalidConfig) {
				logrus.Fatalf("Invalid scenario: %v", err)
			}
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if jsonOutput {
			if err := report.SaveResults("", results); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		if resultsPath != "" {
			if err := report.SaveResults(resultsPath, results); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	// Fatal logs must still flush open recordings.
	logrus.StandardLogger().ExitFunc = atexit.Exit

	runCmd.Flags().StringSliceVar(&scenarioNames, "scenario", []string{"baseline"}, "Built-in scenarios to run (repeatable, or \"all\")")
	runCmd.Flags().StringSliceVar(&configPaths, "config", nil, "YAML scenario files to run (repeatable)")
	runCmd.Flags().Int64Var(&seed, "seed", workload.DefaultSeed, "Seed override for every scenario")
	runCmd.Flags().Float64Var(&horizon, "horizon", 480, "Simulated time override (minutes)")
	runCmd.Flags().StringVar(&arrivalMode, "arrival-mode", station.ArrivalPerFuel, "Arrival mode override (per_fuel, combined)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to save JSON results to")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON results to stdout instead of tables")
	runCmd.Flags().BoolVar(&queueSamples, "queue-samples", false, "Include queue-length series in JSON results")
	runCmd.Flags().BoolVar(&record, "record", false, "Export raw per-vehicle data to SQLite")
	runCmd.Flags().StringVar(&dbPath, "db", "", "SQLite file for --record (default: generated name)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenariosCmd)
}
