package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/spf13/cobra"
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Export the search tree as a Mermaid diagram",
	Long:  `Solves the maze file and prints every explored cell linked to the cell it was reached from (graph TD).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		cfg.Store.Driver = "memory"
		cfg.HTTP.Metrics = false
		backend, err := cli.NewBackend(cfg, logger)
		if err != nil {
			return err
		}

		modeName, _ := cmd.Flags().GetString("mode")
		mode := cfg.SearchMode()
		if modeName != "" {
			if mode, err = domain.ParseMode(modeName); err != nil {
				return err
			}
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		g, err := gridfile.Parse(f)
		f.Close()
		if err != nil {
			return err
		}

		res, err := backend.Service.SolveGrid(cmd.Context(), g, mode)
		if err != nil {
			return err
		}
		var overlay graph.TreeOverlay
		overlay.Start, _ = g.Start()
		overlay.Destination, _ = g.Destination()
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(res, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringP("mode", "m", "", "Search mode (defaults to the configured mode)")
}
