package app

import (
	"net/http"

	"mess-manager-go/internal/config"
	"mess-manager-go/internal/db"
	billsdomain "mess-manager-go/internal/domain/bills"
	integritydomain "mess-manager-go/internal/domain/integrity"
	ledgerdomain "mess-manager-go/internal/domain/ledger"
	messdomain "mess-manager-go/internal/domain/mess"
	notificationdomain "mess-manager-go/internal/domain/notification"
	reportdomain "mess-manager-go/internal/domain/report"
	settlementdomain "mess-manager-go/internal/domain/settlement"
	billsrepo "mess-manager-go/internal/repository/postgres/bills"
	integrityrepo "mess-manager-go/internal/repository/postgres/integrity"
	ledgerrepo "mess-manager-go/internal/repository/postgres/ledger"
	messrepo "mess-manager-go/internal/repository/postgres/mess"
	notificationrepo "mess-manager-go/internal/repository/postgres/notification"
	reportrepo "mess-manager-go/internal/repository/postgres/report"
	settlementrepo "mess-manager-go/internal/repository/postgres/settlement"
	"mess-manager-go/internal/transport/httpserver"
	"mess-manager-go/internal/transport/httpserver/handler"
	"mess-manager-go/pkg/logger"

	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	scheduler  *settlementdomain.Scheduler
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	notifications := notificationdomain.NewService(notificationrepo.NewPostgres(dbConn), log)
	messes := messdomain.NewService(messrepo.NewPostgres(dbConn), notifications)
	ledger := ledgerdomain.NewService(ledgerrepo.NewPostgres(dbConn), notifications)
	reports := reportdomain.NewService(reportrepo.NewPostgres(dbConn))
	integrity := integritydomain.NewService(integrityrepo.NewPostgres(dbConn))
	bills := billsdomain.NewService(billsrepo.NewPostgres(dbConn), notifications)
	settlement := settlementdomain.NewService(settlementrepo.NewPostgres(dbConn), reports, notifications, log)

	var scheduler *settlementdomain.Scheduler
	if cfg.Settlement.Enabled {
		scheduler = settlementdomain.NewScheduler(settlement, cfg.Settlement.CronSpec, log)
	}

	handlers := handler.New(messes, ledger, reports, integrity, bills, settlement, notifications, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, messes, log)

	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		scheduler:  scheduler,
		log:        log,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// StartScheduler begins the monthly settlement cron if it is enabled.
func (a *App) StartScheduler() error {
	if a.scheduler == nil {
		a.log.Info("app: settlement scheduler disabled")
		return nil
	}
	return a.scheduler.Start()
}

func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
