package cmd

import (
	"fmt"
	"log"
	"os"

	"cifrateca/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cifrateca",
	Short: "Cifrateca is a personal chord-sheet library server.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting Cifrateca server...")
		// server.Start handles its own configuration and startup logging.
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
