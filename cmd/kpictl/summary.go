package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vfg2006/sales-kpi-api/internal/cli"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-kpi-api/pkg/utils"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Resumo dos KPIs por comercial, ranking e semanas",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	filter, err := currentFilter()
	if err != nil {
		return err
	}

	s, _, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	dashboard, err := reporting.NewService(s.cfg, s.store).Dashboard(cmd.Context(), filter)
	if err != nil {
		return err
	}

	title := "KPIs SEMANAIS"
	if filter.Week != "" {
		title += "  " + filter.Week
	}
	if filter.Rep != "" {
		title += "  " + filter.Rep
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	if dashboard.Totals.Records == 0 {
		fmt.Println("  Nenhum registro para o filtro selecionado.")
		return nil
	}

	fmt.Print(cli.RenderTable(cli.SummaryTable(dashboard)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.RankingTable(dashboard.Ranking, dashboard.Colors)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.WeekTable(dashboard.ByWeek)))
	fmt.Println()
	fmt.Printf("  Faturamento total: %s  Margem média: %s\n",
		dashboard.Totals.RevenueFormatted,
		utils.FormatPercent(dashboard.Totals.GrossMarginPct),
	)

	return nil
}
