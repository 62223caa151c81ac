package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// @title Expense Tracker API
// @version 1.0
// @description Expense tracking with points, levels, streaks and badges.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var rootCmd = &cobra.Command{
	Use:          "et_backend",
	Short:        "Expense tracker backend",
	Long:         "Expense tracker backend: HTTP API, database migrations and badge maintenance.",
	SilenceUsage: true,
	// no subcommand runs the API, which is what the container image expects
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(badgesCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
