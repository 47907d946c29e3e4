package cmd

import (
	"cifrateca/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Cifrateca HTTP server",
	Long:  `Start the HTTP server that exposes the cifra catalog, the metadata documents and the web client.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
