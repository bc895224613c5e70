package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vfg2006/sales-kpi-api/infrastructure/spreadsheet"
	"github.com/vfg2006/sales-kpi-api/internal/csvcodec"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/reporting"
)

var (
	flagFormat string
	flagOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta os registros em CSV ou XLSX",
	Long:  "Exporta os registros filtrados. Sem --output o arquivo recebe o nome kpi_AAAA-MM-DD; use --output - para a saída padrão.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "csv", "Formato do arquivo (csv ou xlsx)")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Arquivo de destino")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if flagFormat != "csv" && flagFormat != "xlsx" {
		return fmt.Errorf("formato não suportado: %s", flagFormat)
	}

	filter, err := currentFilter()
	if err != nil {
		return err
	}

	s, _, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	records := reporting.FilterRecords(s.store.Records(), filter)

	output := flagOutput
	if output == "" {
		output = csvcodec.FileName(time.Now(), flagFormat)
	}

	var w io.Writer = os.Stdout
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("erro ao criar arquivo: %w", err)
		}
		defer file.Close()
		w = file
	}

	if flagFormat == "xlsx" {
		err = spreadsheet.WriteWorkbook(w, records, reporting.ByRep(records, nil))
	} else {
		err = csvcodec.Export(w, records)
	}
	if err != nil {
		return fmt.Errorf("erro ao exportar registros: %w", err)
	}

	if output != "-" {
		progress(fmt.Sprintf("  %d registros exportados para %s", len(records), output))
	}
	return nil
}
