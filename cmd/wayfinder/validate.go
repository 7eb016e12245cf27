package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wayfinder/internal/validator"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a maze file for consistency",
	Long:  `Parses the maze, checks both markers and crawls from the start to report an unreachable destination.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		g, err := gridfile.Parse(f)
		f.Close()
		if err != nil {
			return err
		}

		report := validator.Inspect(g)
		out := cmd.OutOrStdout()
		for _, w := range report.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(out, "Maze is valid! ✅ (%d reachable cells)\n", report.Reachable)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
