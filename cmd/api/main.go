package main

// @title           HMS Payment Service API
// @version         1.0
// @description     Payment and refund ledger of the hospital management system.

// @contact.name   API Support

// @host      localhost:3006
// @BasePath  /

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "payment-service",
		Short:   "HMS payment and refund ledger",
		Version: Version,
		// no subcommand runs the API server
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
