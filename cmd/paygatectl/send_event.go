package main

import (
	"errors"
	"fmt"
	"time"

	"francoggm/paygate-go-redis/internal/app/webhook"

	"github.com/spf13/cobra"
	"github.com/stripe/stripe-go/v82"
)

func sendEventCmd(flags *globalFlags) *cobra.Command {
	var (
		eventType     string
		correlationID string
		secret        string
		metadataKey   string
		age           time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send-event",
		Short: "Build a fixture webhook event, sign it and post it",
		Long: `Build a webhook event of the given type carrying the correlation id,
sign it with the endpoint secret the way Stripe does and post it to
/webhook/stripe. --age back-dates the signature timestamp.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret is required")
			}

			payload, err := webhook.NewTestEvent(stripe.EventType(eventType), correlationID, metadataKey)
			if err != nil {
				return fmt.Errorf("build event: %w", err)
			}
			signature := webhook.SignTestPayload(payload, secret, time.Now().Add(-age))

			if err := flags.client().SendEvent(cmd.Context(), payload, signature); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sent %s for %q\n", eventType, correlationID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventType, "type", "t", string(stripe.EventTypeCheckoutSessionCompleted), "Event type")
	cmd.Flags().StringVarP(&correlationID, "correlation-id", "c", "", "Correlation id carried by the event")
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "Webhook endpoint secret (whsec_...)")
	cmd.Flags().StringVar(&metadataKey, "metadata-key", webhook.DefaultMetadataKey, "Payment intent metadata key for the correlation id")
	cmd.Flags().DurationVar(&age, "age", 0, "Back-date the signature timestamp by this much")

	return cmd
}
