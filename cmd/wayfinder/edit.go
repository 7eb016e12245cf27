package main

import (
	"errors"
	"os"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [name]",
	Short: "Open the interactive maze editor",
	Long: `Opens a maze from the configured store (creating it with the configured size
when it does not exist) and reads editor commands from standard input.
Type 'help' inside the editor for the command list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		backend, err := cli.NewBackend(cfg, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		name := "maze"
		if len(args) > 0 {
			name = args[0]
		}

		svc := backend.Service
		grid, err := svc.Get(ctx, name)
		if errors.Is(err, domain.ErrMazeNotFound) {
			grid, err = svc.Create(ctx, name, cfg.Width, cfg.Height)
		}
		if err != nil {
			return err
		}

		noAnim, _ := cmd.Flags().GetBool("no-animate")
		out := cmd.OutOrStdout()
		tui.PrintBanner(out, wayfinder.Version)

		editor := cli.NewEditor(svc, name, grid, out,
			cli.WithMode(cfg.SearchMode()),
			cli.WithAnimation(!noAnim),
			cli.WithAnimator(tui.NewAnimator(out,
				tui.WithDelays(cfg.Animation.ExploredDelay, cfg.Animation.PathDelay),
			)),
			cli.WithEditorLogger(logger),
		)
		return cli.HandleExecutionError(editor.Run(ctx, os.Stdin))
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().Bool("no-animate", false, "Draw only the final result after solve")
}
