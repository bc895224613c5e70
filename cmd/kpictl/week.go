package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/pkg/utils"
)

var flagDate string

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Mostra o rótulo da semana ISO de uma data",
	RunE:  runWeek,
}

func init() {
	weekCmd.Flags().StringVar(&flagDate, "date", "", "Data no formato AAAA-MM-DD (padrão: hoje)")
	rootCmd.AddCommand(weekCmd)
}

func runWeek(_ *cobra.Command, _ []string) error {
	date, err := utils.ParseDate(flagDate)
	if err != nil {
		return fmt.Errorf("data inválida %q: %w", flagDate, err)
	}

	label := domain.WeekLabel(date)
	monday, err := domain.ParseWeekLabel(label)
	if err != nil {
		return err
	}

	fmt.Printf("%s  (segunda-feira %s)\n", label, monday.Format(time.DateOnly))
	return nil
}
