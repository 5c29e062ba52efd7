package main

import (
	"errors"
	"fmt"

	"francoggm/paygate-go-redis/internal/models"

	"github.com/spf13/cobra"
)

func statusCmd(flags *globalFlags) *cobra.Command {
	var correlationID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Ask whether a correlation id has paid",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseCorrelationID(correlationID)
			if err != nil {
				return errors.New("--correlation-id is required")
			}

			paid, err := flags.client().HasPaid(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s paid=%t\n", id, paid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&correlationID, "correlation-id", "c", "", "Correlation id to check")

	return cmd
}

func linkCmd(flags *globalFlags) *cobra.Command {
	var correlationID string

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Fetch the payment URL for a correlation id",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseCorrelationID(correlationID)
			if err != nil {
				return errors.New("--correlation-id is required")
			}

			link, err := flags.client().PaymentLink(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), link.URL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&correlationID, "correlation-id", "c", "", "Correlation id the link is issued for")

	return cmd
}
