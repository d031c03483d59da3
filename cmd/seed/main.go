// Package main seeds the global categories shared by every user.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(context.Background()); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		return err
	}

	externals, cleanup := dependency.ConnectExternals(ctx, cfg, database.Ping)
	defer cleanup()

	injector, err := dependency.NewInjector(cfg, database.DB(), externals)
	if err != nil {
		return err
	}

	output, err := injector.SeedUseCase.Execute(ctx, category.SeedGlobalCategoriesInput{
		Names: cfg.Seed.GlobalCategories,
	})
	if err != nil {
		return err
	}

	for _, c := range output.Created {
		slog.Info("Created global category", "id", c.ID, "name", c.Name)
	}
	slog.Info("Seeding completed",
		"created", len(output.Created),
		"skipped", len(output.Skipped),
	)
	return nil
}
