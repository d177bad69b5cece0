package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/holisticagro/agromart/config"
	"github.com/holisticagro/agromart/internal/app"
	"github.com/holisticagro/agromart/internal/server"
	"github.com/holisticagro/agromart/pkg/logger"
)

// agromart serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(context.Background()); err != nil {
				logger.Error("shutdown", "error", err)
			}
		}()

		if err := a.Bootstrap(ctx); err != nil {
			return err
		}

		srv := server.New(cfg.Addr(), a.Handler(), cfg.HTTP)
		return server.Run(ctx, srv, cfg.HTTP.ShutdownTimeout)
	},
}

// agromart routes
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range app.RouteTable(cfg) {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
