// Package cli implements the barcut CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/project"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	stockLength int
	kerf        float64
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "barcut",
	Short: "Steel bar cutting stock optimizer",
	Long:  "Turns a cut list of steel profiles into minimal-waste cutting patterns for fixed-length stock bars, with usage, waste, and weight reporting.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ~/.barcut/config.json)")
	RootCmd.PersistentFlags().IntVarP(&stockLength, "stock-length", "s", 0, "Stock bar length in mm (default from config)")
	RootCmd.PersistentFlags().Float64VarP(&kerf, "kerf", "k", 0, "Material lost per cut in mm (default from config)")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return project.DefaultConfigPath()
}

// loadConfig reads the app config, falling back to defaults when the
// file does not exist or cannot be parsed.
func loadConfig() model.AppConfig {
	config, err := project.LoadAppConfig(getConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot read config: %v\n", err)
		return model.DefaultAppConfig()
	}
	return config
}

// resolveSettings combines config defaults with any flags the user set.
func resolveSettings(cmd *cobra.Command, config model.AppConfig) model.CutSettings {
	settings := config.Settings()
	if cmd.Flags().Changed("stock-length") && stockLength > 0 {
		settings.StockLengthMM = stockLength
	}
	if cmd.Flags().Changed("kerf") && kerf >= 0 {
		settings.KerfMM = kerf
	}
	return settings
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
