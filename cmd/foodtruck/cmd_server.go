package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/foodtruck-labs/foodtruck/app/events"
	"github.com/foodtruck-labs/foodtruck/app/services"
	"github.com/foodtruck-labs/foodtruck/config"
	"github.com/foodtruck-labs/foodtruck/internal/kernel"
	"github.com/foodtruck-labs/foodtruck/pkg/app"
	"github.com/foodtruck-labs/foodtruck/pkg/cache"
	"github.com/foodtruck-labs/foodtruck/pkg/database"
	"github.com/foodtruck-labs/foodtruck/pkg/event"
	"github.com/foodtruck-labs/foodtruck/pkg/logger"
	"github.com/foodtruck-labs/foodtruck/pkg/migration"
	"github.com/foodtruck-labs/foodtruck/pkg/orderid"
)

var migrateOnServe bool

var serveCmd = &cobra.Command{
	Use:       "serve menu|orders",
	Short:     "Start the menu or the order HTTP service",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"menu", "orders"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		service := args[0]

		if err := config.Load(); err != nil {
			return err
		}

		closeLogs, err := logger.EnableMongo(config.LogMongoURI(), config.LogMongoDB(), service)
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		}
		defer closeLogs()

		if err := database.Connect(); err != nil {
			return err
		}
		defer database.Close()

		if migrateOnServe {
			if _, err := migration.New(database.DB, io.Discard).Run(); err != nil {
				return err
			}
		}

		var a *app.Application
		var addr string
		switch service {
		case "menu":
			a = menuApp(ctx)
			addr = ":" + config.MenuPort()
		default:
			a, err = ordersApp()
			if err != nil {
				return err
			}
			addr = ":" + config.OrderPort()
		}

		if port := config.GRPCPort(); port != "" {
			a.WithGRPC(port)
		}
		return a.Serve(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnServe, "migrate", false, "run pending migrations before serving")
}

func menuApp(ctx context.Context) *app.Application {
	var menuCache *cache.Redis
	if addr := config.RedisAddr(); addr != "" {
		c, err := cache.Connect(ctx, addr, config.RedisPassword(), "menu")
		if err != nil {
			logger.Warn("menu cache disabled", "error", err)
		} else {
			menuCache = c
		}
	}

	a := kernel.Menu(kernel.MenuDeps{
		DB:       database.DB,
		Cache:    menuCache,
		CacheTTL: config.MenuCacheTTL(),
	})
	if menuCache != nil {
		a.OnShutdown(func() { _ = menuCache.Close() })
	}
	return a
}

func ordersApp() (*app.Application, error) {
	loc, err := config.OrderLocation()
	if err != nil {
		return nil, err
	}

	dispatcher := event.NewDispatcher()
	var publisher *events.KafkaPublisher
	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		publisher, err = events.NewKafkaPublisher(brokers, config.KafkaTopic())
		if err != nil {
			logger.Warn("order events disabled", "error", err)
		} else {
			publisher.Subscribe(dispatcher)
		}
	}

	a := kernel.Orders(kernel.OrderDeps{
		DB:                database.DB,
		Catalog:           services.NewMenuClient(config.MenuURL(), config.MenuTimeout()),
		Clock:             orderid.NewClock(loc),
		Events:            dispatcher,
		LookupConcurrency: config.Int("MENU_LOOKUP_CONCURRENCY", services.DefaultLookupConcurrency),
	})
	if publisher != nil {
		a.OnShutdown(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := publisher.Close(ctx); err != nil {
				logger.Warn("order events: close", "error", err)
			}
		})
	}
	return a, nil
}

var routeListCmd = &cobra.Command{
	Use:       "route:list menu|orders",
	Short:     "List the routes a service serves",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"menu", "orders"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var a *app.Application
		if args[0] == "menu" {
			a = kernel.Menu(kernel.MenuDeps{})
		} else {
			a = kernel.Orders(kernel.OrderDeps{})
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		for _, ri := range a.RouteList() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
