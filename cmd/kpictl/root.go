package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vfg2006/sales-kpi-api/infrastructure/database"
	"github.com/vfg2006/sales-kpi-api/infrastructure/events"
	"github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/sales-kpi-api/infrastructure/repository"
	"github.com/vfg2006/sales-kpi-api/internal/cli"
	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/recording"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

var (
	flagWeek    string
	flagRep     string
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:           "kpictl",
	Short:         "KPIs semanais de vendas pelo terminal",
	Long:          "Consulta, exporta e importa os registros semanais de KPI usando a mesma base da API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSummary,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderWarning("  erro: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagWeek, "week", "w", "", "Filtra pela semana ISO (AAAA-Www)")
	rootCmd.PersistentFlags().StringVarP(&flagRep, "rep", "r", "", "Filtra pelo comercial")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Mostra os logs da aplicação")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suprime mensagens de progresso")
}

// session reúne o que os comandos precisam para ler e gravar registros
type session struct {
	cfg       *config.Config
	conn      *database.Connection
	store     *recording.Store
	publisher events.Publisher
}

// openSession carrega a configuração, abre a base e mescla a planilha remota
func openSession(ctx context.Context) (*session, domain.LoadSummary, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, domain.LoadSummary{}, err
	}

	level := "error"
	if flagVerbose {
		level = cfg.App.LogLevel
	}
	log.Setup(level)

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, domain.LoadSummary{}, fmt.Errorf("erro ao conectar ao banco: %w", err)
	}
	if err := database.Migrate(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, domain.LoadSummary{}, fmt.Errorf("erro ao aplicar schema: %w", err)
	}

	remote := sheets.New(cfg, sheetsclient.NewClient(cfg))
	publisher := events.NewPublisher(cfg.Kafka)
	store := recording.NewStore(cfg, repository.NewWeeklyRecordRepository(conn), remote, publisher)

	progress("  Carregando registros...")
	summary, err := store.Load(ctx)
	if err != nil {
		_ = publisher.Close()
		_ = conn.Close()
		return nil, domain.LoadSummary{}, err
	}
	progress("  " + cli.FormatLoadSummary(summary))

	return &session{cfg: cfg, conn: conn, store: store, publisher: publisher}, summary, nil
}

// Close aguarda os envios em segundo plano e libera as conexões
func (s *session) Close() {
	s.store.Wait()
	_ = s.publisher.Close()
	_ = s.conn.Close()
}

func currentFilter() (domain.Filter, error) {
	if flagWeek != "" && !domain.IsWeekLabel(flagWeek) {
		return domain.Filter{}, fmt.Errorf("semana inválida %q, use o formato AAAA-Www", flagWeek)
	}
	return domain.Filter{Week: flagWeek, Rep: flagRep}, nil
}

func progress(message string) {
	if flagQuiet {
		return
	}
	fmt.Fprintln(os.Stderr, cli.RenderMuted(message))
}
