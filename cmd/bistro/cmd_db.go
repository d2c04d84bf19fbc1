package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/database/migrations"
	"github.com/shashiranjanraj/bistro/database/seeders"
	"github.com/shashiranjanraj/bistro/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect(ctx)
}

// bistro db:index
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Ensure all collection indexes exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Ensuring indexes…")
		return migrations.RunAll(cmd.Context(), database.DB())
	},
}

// bistro db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		return seeders.RunAll(cmd.Context(), database.DB())
	},
}
