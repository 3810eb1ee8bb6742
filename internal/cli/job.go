package cli

import (
	"fmt"
	"os"

	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/project"
	"github.com/piwi3910/barcut/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "job <jobfile>",
		Short: "Re-run a saved job file",
		Args:  cobra.ExactArgs(1),
		Run:   runJob,
	}

	RootCmd.AddCommand(cmd)
}

func runJob(cmd *cobra.Command, args []string) {
	config := loadConfig()

	job, err := project.LoadJob(args[0])
	if err != nil {
		exitErr("load job", err)
	}

	// Flags override the settings stored in the job.
	settings := job.Settings
	if cmd.Flags().Changed("stock-length") && stockLength > 0 {
		settings.StockLengthMM = stockLength
	}
	if cmd.Flags().Changed("kerf") && kerf >= 0 {
		settings.KerfMM = kerf
	}

	results := engine.PackGroups(model.GroupByProfile(job.Parts), settings)
	if len(results) == 0 {
		exitErr("optimize", fmt.Errorf("job %q has no profile groups", job.Name))
	}

	if err := report.WriteAggregateTable(os.Stdout, report.AggregateAll(results, settings)); err != nil {
		exitErr("report", err)
	}
	fmt.Println()
	if err := report.WritePatternTables(os.Stdout, results, settings); err != nil {
		exitErr("report", err)
	}

	config.AddRecentJob(args[0])
	if err := project.SaveAppConfig(getConfigPath(), config); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot save config: %v\n", err)
	}
}
