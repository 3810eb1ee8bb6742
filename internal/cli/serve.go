package cli

import (
	"log"

	"github.com/piwi3910/barcut/internal/web"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web upload form and JSON API",
		Run:   runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	config := loadConfig()
	settings := resolveSettings(cmd, config)

	addr, _ := cmd.Flags().GetString("addr")
	log.Printf("listening on %s", addr)
	if err := web.NewServer(settings).Run(addr); err != nil {
		exitErr("serve", err)
	}
}
