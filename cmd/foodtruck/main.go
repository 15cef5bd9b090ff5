// Command foodtruck runs the menu and order services and manages their
// database.
//
//	foodtruck serve menu
//	foodtruck serve orders
//	foodtruck migrate
//	foodtruck migrate:rollback
//	foodtruck migrate:status
//	foodtruck seed
//	foodtruck route:list orders
//	foodtruck orders:counter 20251112
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/foodtruck-labs/foodtruck/database/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "foodtruck",
	Short:         "Menu and order services for the food truck",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(orderCounterCmd)
}
