package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/dropoff/internal/logtail"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	var opts logtail.Options

	cmd := &cobra.Command{
		Use:   "log [ID]",
		Short: "Show recent desk log entries",
		Long:  "Show the end of the desk log. Pass a ticket ID to list only events for that item.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Match = args[0]
			}
			lines, err := logtail.Read(env.Config.LogPath(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(lines) == 0 {
				fmt.Fprintln(out, "No log entries.")
				return nil
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Minimum level: debug, info, warn or error")
	return cmd
}
