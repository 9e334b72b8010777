package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/five82/dropoff/internal/config"
	"github.com/five82/dropoff/internal/desk"
	"github.com/five82/dropoff/internal/ledger"
)

func newCheckInCommand(ctx *commandContext) *cobra.Command {
	var in desk.Intake

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Check a battery in and print its receipt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv()
			if err != nil {
				return err
			}
			res, err := env.Service.CheckIn(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked in %s\n", res.Record.ID)
			fmt.Fprintf(out, "Pickup by: %s\n", res.PickupAt.Format(ledger.TimeLayout))
			fmt.Fprintf(out, "Receipt:   %s\n", res.ReceiptPath)
			fmt.Fprintf(out, "Barcode:   %s\n", res.BarcodePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Customer name")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Customer phone number")
	cmd.Flags().StringVar(&in.BatterySize, "size", "", "Battery size, e.g. \"Group 24\"")
	return cmd
}

func newCheckOutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout ID",
		Short: "Check a battery out and print both receipt copies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv()
			if err != nil {
				return err
			}
			res, err := env.Service.CheckOut(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !res.Known {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: no check-in found for %s\n", res.Record.ID)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked out %s\n", res.Record.ID)
			fmt.Fprintf(out, "Employee copy: %s\n", res.ReceiptPath)
			fmt.Fprintf(out, "Customer copy: %s\n", res.CustomerPath)
			return nil
		},
	}
}

func newOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "List batteries waiting for pickup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv()
			if err != nil {
				return err
			}
			items, err := env.Service.Ledger().Outstanding()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No batteries waiting for pickup.")
				return nil
			}

			hours := env.Service.PickupHours()
			now := time.Now()
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				due := it.Timestamp.Add(time.Duration(hours) * time.Hour)
				status := "open"
				if now.After(due) {
					status = "overdue"
				}
				rows = append(rows, []string{
					it.ID,
					it.Name,
					it.Phone,
					it.BatterySize,
					it.Timestamp.Format(ledger.TimeLayout),
					due.Format(ledger.TimeLayout),
					waiting(now.Sub(it.Timestamp)),
					status,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{title: "ID"},
				{title: "Name"},
				{title: "Phone"},
				{title: "Size"},
				{title: "Checked In"},
				{title: "Pickup By"},
				{title: "Waiting", align: text.AlignRight},
				{title: "Status"},
			}, rows))
			return nil
		},
	}
}

// waiting formats how long a battery has been at the desk.
func waiting(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "export checkin|checkout DEST",
		Short:     "Copy a log to DEST for reporting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(ledger.KindCheckIn), string(ledger.KindCheckOut)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := ledger.Kind(strings.ToLower(strings.TrimSpace(args[0])))
			if kind != ledger.KindCheckIn && kind != ledger.KindCheckOut {
				return fmt.Errorf("%w %q (want checkin or checkout)", ledger.ErrUnknownKind, args[0])
			}
			dest, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}
			env, err := ctx.ensureEnv()
			if err != nil {
				return err
			}
			if err := env.Service.Export(kind, dest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", dest)
			return nil
		},
	}
}

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change desk settings",
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "pickup-hours [N]",
		Short: "Show or set the promised pickup window in hours",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "Pickup hours: %d\n", env.Service.PickupHours())
				return nil
			}
			hours, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("%w: %q", desk.ErrInvalidPickupHours, args[0])
			}
			if err := env.Service.SetPickupHours(hours); err != nil {
				return err
			}
			fmt.Fprintf(out, "Pickup time set to %d hours.\n", hours)
			return nil
		},
	})

	return settingsCmd
}
