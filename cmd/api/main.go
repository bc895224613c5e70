package main

import (
	"context"

	"github.com/vfg2006/sales-kpi-api/infrastructure/database"
	"github.com/vfg2006/sales-kpi-api/infrastructure/events"
	"github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/sales-kpi-api/infrastructure/repository"
	"github.com/vfg2006/sales-kpi-api/internal/api"
	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/scheduler"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/recording"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	log.L.Infof("Nível de log configurado para: %s", cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	recordRepo := repository.NewWeeklyRecordRepository(conn)

	sheetsClient := sheetsclient.NewClient(cfg)
	remote := sheets.New(cfg, sheetsClient)
	if !remote.Enabled() {
		log.L.Info("Planilha remota não configurada, usando apenas a base local")
	}

	publisher := events.NewPublisher(cfg.Kafka)

	store := recording.NewStore(cfg, recordRepo, remote, publisher)
	if _, err := store.Load(ctx); err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar registros")
	}

	reporter := reporting.NewService(cfg, store)

	authenticator, err := authenticating.NewService(cfg)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao configurar acesso ao painel")
	}

	remoteSyncService := scheduler.NewRemoteSyncService(store, cfg)
	if err := remoteSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de mesclagem remota")
	}

	server, err := api.New(cfg, store, reporter, authenticator, remoteSyncService)
	if err != nil {
		log.L.Fatal(err)
	}

	server.OnShutdown(func() {
		// envios em segundo plano ainda pendentes
		store.Wait()
		if err := publisher.Close(); err != nil {
			log.L.WithError(err).Warn("Erro ao fechar publicador de eventos")
		}
	})

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// dbconn abre a base local e aplica o schema
func dbconn(ctx context.Context, dbConfig config.Database) *database.Connection {
	conn, err := database.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatalf("Erro ao conectar ao banco (%s)", dbConfig.Driver)
	}

	if err := database.Migrate(ctx, conn); err != nil {
		log.L.WithError(err).Fatal("Erro ao aplicar schema do banco")
	}

	log.L.WithField("driver", conn.Driver()).Info("Conexão com o banco estabelecida com sucesso")
	return conn
}
