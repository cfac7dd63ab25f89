package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mmm-engine-api/infrastructure/database/postgres"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository"
	"github.com/vfg2006/mmm-engine-api/internal/api"
	"github.com/vfg2006/mmm-engine-api/internal/config"
	"github.com/vfg2006/mmm-engine-api/internal/scheduler"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/attributing"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/authenticating"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/optimizing"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/reporting"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/saturating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	marketingDataRepo := repository.NewMarketingDataRepository(pgConn)
	attributionResultRepo := repository.NewAttributionResultRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	externalFactorRepo := repository.NewExternalFactorRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	attributor := attributing.NewService(cfg, marketingDataRepo)
	estimator := saturating.NewService(cfg, marketingDataRepo)
	optimizer := optimizing.NewService(cfg, marketingDataRepo, estimator)
	reporter := reporting.NewService(marketingDataRepo, externalFactorRepo, campaignRepo)

	// Agendador de snapshots noturnos de atribuição
	snapshotSyncService := scheduler.NewAttributionSnapshotSyncService(
		attributor,
		attributionResultRepo,
		cfg,
	)

	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots de atribuição")
	} else {
		logrus.Info("Agendador de snapshots de atribuição iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		attributor,
		estimator,
		optimizer,
		reporter,
		authenticator,
		attributionResultRepo,
		snapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
