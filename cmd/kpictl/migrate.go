package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vfg2006/sales-kpi-api/infrastructure/database"
	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria ou atualiza o schema do banco",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	log.Setup(cfg.App.LogLevel)

	conn, err := database.NewConnection(cmd.Context(), cfg.Database)
	if err != nil {
		return fmt.Errorf("erro ao conectar ao banco: %w", err)
	}
	defer conn.Close()

	if err := database.Migrate(cmd.Context(), conn); err != nil {
		return err
	}

	fmt.Printf("  Schema aplicado (%s)\n", conn.Driver())
	return nil
}
