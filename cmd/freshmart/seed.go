package main

import (
	"github.com/example/freshmart/pkg/repository"
	"github.com/example/freshmart/pkg/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Drop all tables and load the demo catalog",
	Long:  "Drops every table, recreates the schema and inserts the demo categories and products. Users, carts and orders are lost.",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := repository.OpenDB(&cfg.Database)
	if err != nil {
		return err
	}
	defer repository.Close(db)

	res, err := seed.Run(cmd.Context(), db)
	if err != nil {
		return err
	}

	if cfg.Redis.Enabled {
		cache := repository.NewRedisRepository(&cfg.Redis)
		defer cache.Close()
		if err := cache.InvalidateAll(cmd.Context()); err != nil {
			logger.Warn("Failed to clear catalog cache", zap.Error(err))
		}
	}

	logger.Info("Database seeded",
		zap.Int("categories", res.Categories),
		zap.Int("products", res.Products))
	return nil
}
