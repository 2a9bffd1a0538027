package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/station-sim/station-sim/sim/workload"
)

// listScenarios writes one line per built-in preset.
func listScenarios(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range workload.ScenarioNames() {
		s, _ := workload.Scenario(name, workload.DefaultSeed)
		fmt.Fprintf(tw, "%s\t%s\n", name, s.Description)
	}
	tw.Flush()
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		listScenarios(os.Stdout)
	},
}
