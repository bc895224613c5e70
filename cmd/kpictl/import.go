package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vfg2006/sales-kpi-api/infrastructure/spreadsheet"
	"github.com/vfg2006/sales-kpi-api/internal/csvcodec"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/pkg/utils"
)

var importCmd = &cobra.Command{
	Use:   "import <arquivo>",
	Short: "Importa registros de um CSV ou XLSX",
	Long:  "Cada linha importada vira um registro novo, com id e data de criação próprios.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("erro ao abrir arquivo: %w", err)
	}
	defer file.Close()

	var records []domain.WeeklyRecord
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		records, err = spreadsheet.ReadRecords(file, time.Now, utils.GenerateID)
	} else {
		records, err = csvcodec.Import(file, time.Now, utils.GenerateID)
	}
	if err != nil {
		return fmt.Errorf("erro ao ler %s: %w", filepath.Base(path), err)
	}

	s, _, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	imported, err := s.store.Import(cmd.Context(), records)
	if err != nil {
		return err
	}

	fmt.Printf("  %d registros importados\n", imported)
	return nil
}
