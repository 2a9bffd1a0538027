package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
)

// Print writes a human-readable report of one scenario.
func Print(w io.Writer, r ScenarioResult) {
	fmt.Fprintf(w, "=== Scenario: %s ===\n", r.Scenario)
	if r.Description != "" {
		fmt.Fprintf(w, "%s\n", r.Description)
	}
	fmt.Fprintf(w, "Run ID        : %s\n", r.RunID)
	fmt.Fprintf(w, "Seed          : %d\n", r.Seed)
	fmt.Fprintf(w, "Horizon       : %.1f min\n", r.Horizon)
	fmt.Fprintf(w, "Arrival mode  : %s\n", r.ArrivalMode)
	fmt.Fprintf(w, "Events        : %d fired, %d discarded at horizon\n", r.EventsFired, r.EventsDropped)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "fuel\tpumps\tarrived\tdone\tleft\twait avg\twait p95\ttotal avg\tservice avg\tP(wait)\tutil\tLq avg\tLq max\t")
	for _, f := range r.Fuels {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t\n",
			f.Fuel, f.Pumps, f.Arrivals, f.Completed, f.InStation,
			f.Wait.Mean, f.Wait.P95, f.Total.Mean, f.Service.Mean,
			f.ProbWait, f.Utilization, f.MeanQueueLen, f.MaxQueueLen)
	}
	tw.Flush()
}

// Compare writes the mean wait and total time of every scenario per fuel,
// with the change relative to the first scenario.
func Compare(w io.Writer, results []ScenarioResult) {
	if len(results) == 0 {
		return
	}
	base := results[0]
	fmt.Fprintf(w, "=== Scenario comparison (relative to %s) ===\n", base.Scenario)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "scenario\tfuel\twait avg\tΔwait\ttotal avg\tΔtotal\tutil\t")
	for _, r := range results {
		for _, f := range r.Fuels {
			dWait, dTotal := "-", "-"
			if b, ok := base.Fuel(f.Fuel); ok && r.RunID != base.RunID {
				dWait = fmt.Sprintf("%+.2f", f.Wait.Mean-b.Wait.Mean)
				dTotal = fmt.Sprintf("%+.2f", f.Total.Mean-b.Total.Mean)
			}
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%.2f\t%s\t%.2f\t\n",
				r.Scenario, f.Fuel, f.Wait.Mean, dWait, f.Total.Mean, dTotal, f.Utilization)
		}
	}
	tw.Flush()
}

// SaveResults writes results as indented JSON to path, or to stdout if path is empty.
func SaveResults(path string, results []ScenarioResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	logrus.Infof("Results written to %s", path)
	return nil
}
