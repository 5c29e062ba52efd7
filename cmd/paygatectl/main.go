package main

import (
	"fmt"
	"os"
	"time"

	"francoggm/paygate-go-redis/internal/app/client"

	"github.com/spf13/cobra"
)

var Version = "dev"

type globalFlags struct {
	url     string
	header  string
	timeout time.Duration
}

func (g *globalFlags) client() *client.PaygateClient {
	return client.NewPaygateClient(g.url, g.timeout, g.header)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "paygatectl",
		Short:         "Drive a paygate server by hand: send signed events, check status, fetch links",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.url, "url", "http://localhost:8080", "Base URL of the paygate server")
	rootCmd.PersistentFlags().StringVar(&flags.header, "header", client.DefaultCorrelationHeader, "Correlation id header name")
	rootCmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", client.DefaultTimeout, "Request timeout")

	rootCmd.AddCommand(sendEventCmd(flags))
	rootCmd.AddCommand(statusCmd(flags))
	rootCmd.AddCommand(linkCmd(flags))

	return rootCmd
}
