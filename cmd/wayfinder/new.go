package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Write an empty maze file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		width, height := cfg.Width, cfg.Height
		if cmd.Flags().Changed("width") {
			width, _ = cmd.Flags().GetInt("width")
		}
		if cmd.Flags().Changed("height") {
			height, _ = cmd.Flags().GetInt("height")
		}

		g, err := domain.NewGrid(width, height)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
		if force {
			flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		}
		f, err := os.OpenFile(args[0], flags, 0o644)
		if err != nil {
			return err
		}
		if err := gridfile.Encode(f, g); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%dx%d)\n", args[0], width, height)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().Int("width", 0, "Columns (defaults to the configured width)")
	newCmd.Flags().Int("height", 0, "Rows (defaults to the configured height)")
	newCmd.Flags().Bool("force", false, "Overwrite an existing file")
}
