package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/foodtruck-labs/foodtruck/app/repositories"
	"github.com/foodtruck-labs/foodtruck/config"
	"github.com/foodtruck-labs/foodtruck/database/seeders"
	"github.com/foodtruck-labs/foodtruck/pkg/database"
	"github.com/foodtruck-labs/foodtruck/pkg/migration"
	"github.com/foodtruck-labs/foodtruck/pkg/orderid"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()

		_, err := migration.New(database.DB, cmd.OutOrStdout()).Run()
		return err
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()

		_, err := migration.New(database.DB, cmd.OutOrStdout()).Rollback()
		return err
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show which migrations have run",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()

		states, err := migration.New(database.DB, nil).Status()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tSTATUS\tBATCH")
		for _, s := range states {
			if s.Ran {
				fmt.Fprintf(w, "%s\tRan\t%d\n", s.Name, s.Batch)
			} else {
				fmt.Fprintf(w, "%s\tPending\t-\n", s.Name)
			}
		}
		return w.Flush()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()

		return seeders.RunAll(database.DB, cmd.OutOrStdout())
	},
}

// orders:counter prints the last sequence value handed out for a day.
var orderCounterCmd = &cobra.Command{
	Use:   "orders:counter [YYYYMMDD]",
	Short: "Show the order sequence counter for a day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close()

		var day string
		if len(args) == 1 {
			if _, err := time.Parse("20060102", args[0]); err != nil {
				return fmt.Errorf("invalid day %q: want YYYYMMDD", args[0])
			}
			day = args[0]
		} else {
			loc, err := config.OrderLocation()
			if err != nil {
				return err
			}
			day = orderid.NewClock(loc).DayKey()
		}

		seq, err := repositories.NewCounterRepository(database.DB).Current(cmd.Context(), day)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "DAY\tLAST SEQUENCE\tLAST ID")
		last := "-"
		if seq > 0 {
			last = orderid.Format(day, seq)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", day, seq, last)
		return w.Flush()
	},
}
