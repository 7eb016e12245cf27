package main

import (
	"os"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve <file>",
	Short: "Solve a maze file in the console",
	Long: `Loads a maze text file, asks for a search mode unless --mode is given,
then draws the explored cells and the route one at a time.`,
	Args: cobra.ExactArgs(1),
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

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		mode, _ := cmd.Flags().GetString("mode")
		animate, _ := cmd.Flags().GetBool("animate")
		plain, _ := cmd.Flags().GetBool("plain")

		console := cli.NewConsole(backend.Service, os.Stdin, cmd.OutOrStdout())
		_, err = console.SolveFile(ctx, args[0], cli.SolveOptions{
			Mode:          mode,
			Animate:       animate,
			Plain:         plain,
			ExploredDelay: cfg.Animation.ExploredDelay,
			PathDelay:     cfg.Animation.PathDelay,
		})
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("mode", "m", "", "Search mode (BFS, DFS, Greedy BFS, A*); prompts when empty")
	solveCmd.Flags().Bool("animate", true, "Replay the search cell by cell")
	solveCmd.Flags().Bool("plain", false, "Print digits instead of coloured glyphs")
}
