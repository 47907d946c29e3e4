package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"cifrateca/config"
	"cifrateca/core/catalog"
	"cifrateca/model"

	"github.com/spf13/cobra"
)

var (
	catalogFlat bool
	catalogJSON bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the cifra catalog",
	Long:  `Walk the catalog directory and print the category tree, or the flat song list with parsed artist/song names.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		svc := catalog.NewService(cfg.CifrasDir)

		if catalogFlat {
			cifras, err := svc.Flat()
			if err != nil {
				log.Fatalf("Failed to list catalog: %v", err)
			}
			if catalogJSON {
				printJSON(cifras)
				return
			}
			for _, c := range cifras {
				fmt.Printf("%s - %s  (%s)\n", c.Artist, c.Song, c.Filename)
			}
			fmt.Printf("\n%d cifra(s)\n", len(cifras))
			return
		}

		tree, err := svc.Tree()
		if err != nil {
			log.Fatalf("Failed to list catalog: %v", err)
		}
		if catalogJSON {
			printJSON(tree)
			return
		}
		printTree(tree, 0)
	},
}

func printTree(nodes []model.CatalogNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		if n.Type == model.NodeCategory {
			fmt.Printf("%s%s/\n", indent, n.Name)
			printTree(n.Children, depth+1)
		} else {
			fmt.Printf("%s%s\n", indent, n.Name)
		}
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode catalog: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().BoolVarP(&catalogFlat, "flat", "f", false, "print the flat song list instead of the tree")
	catalogCmd.Flags().BoolVarP(&catalogJSON, "json", "j", false, "print the API JSON representation")

	catalogCmd.Example = `  # Print the category tree
  cifrateca catalog

  # Print the flat list with parsed artist/song names
  cifrateca catalog -f

  # Print the JSON the API would return
  cifrateca catalog -j`
}
