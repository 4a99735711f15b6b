package main

import (
	"errors"
	"fmt"

	"projectFlow/internal/config"
	"projectFlow/internal/logger"
	"projectFlow/internal/repository/postgres"

	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Управление схемой PostgreSQL",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Применить все миграции",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := databaseURL(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return postgres.Migrate(url)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Откатить все миграции",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := databaseURL(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return postgres.Down(url)
		},
	})

	return cmd
}

func databaseURL(configPath string) (string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	if err := logger.Init(cfg.Logging.Development); err != nil {
		return "", fmt.Errorf("инициализация логгера: %w", err)
	}
	if cfg.Database.URL == "" {
		return "", errors.New("database.url не задан")
	}
	return cfg.Database.URL, nil
}
