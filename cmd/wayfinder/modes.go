package main

import (
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the search modes",
	Run: func(cmd *cobra.Command, args []string) {
		for i, name := range domain.ModeNames() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, name)
		}
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}
