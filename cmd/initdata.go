package cmd

import (
	"fmt"
	"log"

	"cifrateca/config"
	"cifrateca/repository"

	"github.com/spf13/cobra"
)

var initdataCmd = &cobra.Command{
	Use:   "initdata",
	Short: "Create missing metadata documents",
	Long: `Create the categories, playlists and settings JSON documents that do not
exist yet. Existing documents are left untouched; a corrupt document is
reported, never overwritten.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		created, err := repository.InitDocuments(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize metadata documents: %v", err)
		}

		if len(created) == 0 {
			fmt.Println("All metadata documents already exist.")
			return
		}
		for _, path := range created {
			fmt.Printf("Created %s\n", path)
		}
	},
}

func init() {
	rootCmd.AddCommand(initdataCmd)
}
