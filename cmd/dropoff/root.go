package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/dropoff/internal/app"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var prefsFlag string
	var pollFlag int
	var verbose bool

	ctx := newCommandContext(&configFlag, &prefsFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:           "dropoff",
		Short:         "Battery charging drop-off desk",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return cmd.Help()
			}
			return app.Run(cmd.Context(), ctx.appOptions(pollFlag))
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&prefsFlag, "prefs", "", "Preferences file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also write logs to stderr")
	rootCmd.Flags().IntVar(&pollFlag, "poll", 0, "Ledger refresh interval in seconds (default 2)")

	rootCmd.AddCommand(newCheckInCommand(ctx))
	rootCmd.AddCommand(newCheckOutCommand(ctx))
	rootCmd.AddCommand(newOpenCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newSettingsCommand(ctx))
	rootCmd.AddCommand(newLogCommand(ctx))

	return rootCmd
}
