package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holisticagro/agromart/config"
	"github.com/holisticagro/agromart/database/seeders"
	"github.com/holisticagro/agromart/internal/app"
	"github.com/holisticagro/agromart/pkg/migration"
)

// withApp loads config, opens the application and closes it after fn.
func withApp(ctx context.Context, fn func(*app.Application) error) (err error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(context.Background()); err == nil {
			err = cerr
		}
	}()
	return fn(a)
}

// agromart migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.Application) error {
			applied, err := migration.New(a.DB).Run(cmd.Context())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Println("Nothing to migrate.")
				return nil
			}
			for _, name := range applied {
				fmt.Println("Migrated:", name)
			}
			return nil
		})
	},
}

// agromart seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run the database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.Application) error {
			if err := seeders.RunAll(cmd.Context(), a.DB, a.Seeders()...); err != nil {
				return err
			}
			fmt.Printf("Seeding complete (%d seeders ran)\n", len(a.Seeders()))
			return nil
		})
	},
}
