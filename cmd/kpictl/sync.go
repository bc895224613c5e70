package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vfg2006/sales-kpi-api/internal/cli"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mescla a planilha remota na base local",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	s, summary, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.cfg.Remote.Enabled() {
		fmt.Println(cli.RenderWarning("  Planilha remota não configurada, nada a sincronizar."))
		return nil
	}

	if summary.RemoteFailed {
		return fmt.Errorf("erro de rede: %s", summary.RemoteError)
	}

	fmt.Printf("  %s\n", cli.FormatLoadSummary(summary))
	fmt.Printf("  Concluído em %s\n", cli.FormatTimestamp(summary.LoadedAt))
	return nil
}
