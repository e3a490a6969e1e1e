package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/recipemama/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "recipemama",
		Short:         "Browse recipes in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	cmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "override prefs path (optional)")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "theme for this session: Nightfox, Kanagawa or Slate")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "write debug entries to the log")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "recipemama: %v\n", err)
		return 1
	}
	return 0
}
