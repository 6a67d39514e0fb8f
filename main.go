package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/passgate/app"
	kernel "github.com/km-arc/passgate/framework/app"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "passgate",
		Short:         "Validate password lines against their embedded character rule",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), versionCmd())
	return root
}

func serveCmd() *cobra.Command {
	var (
		envFiles []string
		port     string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validator page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				if err := os.Setenv("APP_PORT", port); err != nil {
					return err
				}
			}

			a := kernel.New(envFiles...)
			app.Register(a)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
	cmd.Flags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load, later files win")
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides APP_PORT)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "passgate %s\n", kernel.Version)
		},
	}
}
