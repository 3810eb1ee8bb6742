package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/export"
	"github.com/piwi3910/barcut/internal/importer"
	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/project"
	"github.com/piwi3910/barcut/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "optimize <cutlist>",
		Short: "Optimize a cut list file (CSV or Excel)",
		Args:  cobra.ExactArgs(1),
		Run:   runOptimize,
	}

	cmd.Flags().String("xlsx", "", "Write results workbook to this path")
	cmd.Flags().String("pdf", "", "Write results PDF to this path")
	cmd.Flags().String("labels", "", "Write QR bundle labels PDF to this path")
	cmd.Flags().String("save-job", "", "Save parts, settings and results as a job file")

	RootCmd.AddCommand(cmd)
}

func runOptimize(cmd *cobra.Command, args []string) {
	config := loadConfig()
	settings := resolveSettings(cmd, config)

	path := args[0]
	imported := importer.ImportFile(path)
	for _, w := range imported.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range imported.Errors {
		fmt.Fprintf(os.Stderr, "skipped: %s\n", e)
	}
	if len(imported.Parts) == 0 {
		exitErr("import", fmt.Errorf("no usable rows in %s", path))
	}

	results := engine.PackGroups(model.GroupByProfile(imported.Parts), settings)
	if len(results) == 0 {
		exitErr("optimize", fmt.Errorf("no profile groups in %s", path))
	}

	if err := report.WriteAggregateTable(os.Stdout, report.AggregateAll(results, settings)); err != nil {
		exitErr("report", err)
	}
	fmt.Println()
	if err := report.WritePatternTables(os.Stdout, results, settings); err != nil {
		exitErr("report", err)
	}

	if out, _ := cmd.Flags().GetString("xlsx"); out != "" {
		if err := export.ExportExcel(out, results, settings); err != nil {
			exitErr("excel export", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	}
	if out, _ := cmd.Flags().GetString("pdf"); out != "" {
		if err := export.ExportPDF(out, results, settings); err != nil {
			exitErr("pdf export", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	}
	if out, _ := cmd.Flags().GetString("labels"); out != "" {
		if err := export.ExportLabels(out, results, settings); err != nil {
			exitErr("labels export", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	}

	config.LastImportDir = filepath.Dir(path)
	if out, _ := cmd.Flags().GetString("save-job"); out != "" {
		job := project.Job{
			Settings: settings,
			Parts:    imported.Parts,
			Results:  results,
		}
		if err := project.SaveJob(out, job); err != nil {
			exitErr("save job", err)
		}
		config.AddRecentJob(out)
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	}

	// Config persistence is best effort; the run already succeeded.
	if err := project.SaveAppConfig(getConfigPath(), config); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot save config: %v\n", err)
	}
}
