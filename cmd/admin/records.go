package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	optoutsvc "github.com/fadedpez/bankroll/pkg/services/optout"
	"github.com/spf13/cobra"
)

func newOptOutCommand(flags *storeFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optout",
		Short: "Inspect or change a user's opt-out flags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a user's opt-out flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer stores.Close()

			optedOut, err := optoutsvc.NewService(stores.OptOuts).IsOptedOutOfCurrency(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s currency=%t\n", args[0], optedOut)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <user-id> <true|false>",
		Short: "Opt a user in or out of currency commands",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			optedOut, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid opt-out value %q: %w", args[1], err)
			}

			stores, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer stores.Close()

			optOut, err := optoutsvc.NewService(stores.OptOuts).SetCurrency(cmd.Context(), args[0], optedOut)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s currency=%t\n", optOut.UserID, optOut.Currency)
			return nil
		},
	})

	return cmd
}

func newRecordCommand(flags *storeFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Inspect currency records",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <user-id>",
		Short: "Print a user's currency record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer stores.Close()

			record, err := stores.Currency.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error loading record for %s: %w", args[0], err)
			}

			out, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the number of records and the currency in circulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer stores.Close()

			count, err := stores.Currency.Count(cmd.Context())
			if err != nil {
				return err
			}
			total, err := stores.Currency.TotalCurrency(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "records=%d total=%d\n", count, total)
			return nil
		},
	})

	return cmd
}
