package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rectalogic/terp/internal/config"
	"github.com/rectalogic/terp/internal/logging"
)

type options struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	edit := newEditCmd(opts)

	root := &cobra.Command{
		Use:           "terp",
		Short:         "Draw paired strokes and morph between them",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          edit.Args,
		RunE:          edit.RunE,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			logging.Set(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "settings file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")
	root.Flags().AddFlagSet(edit.Flags())

	root.AddCommand(
		edit,
		newPlayCmd(opts),
		newExportCmd(opts),
		newShareCmd(opts),
		newJoinCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "terp:", err)
		os.Exit(1)
	}
}
